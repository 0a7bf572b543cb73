// Package services holds the application layer: the CRUD services for the
// catalog entities, the order workflow and the dashboard aggregations.
// Services are the only callers of the persistence ports; each operation
// creates its own unit of work and mutations run inside one transaction.
package services
