package ports

import "context"

// UnitOfWork manages database transactions and provides access to
// repositories within the transaction scope. Repositories obtained from a
// unit of work share its transaction once Begin has been called; without an
// active transaction they operate directly on the database.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls the current transaction back. Calling Rollback after a
	// successful Commit is a no-op, which makes the deferred-rollback
	// pattern safe.
	Rollback(ctx context.Context) error

	// OrderRepository returns the order repository bound to this unit of work.
	OrderRepository() OrderRepository

	// ProductRepository returns the product repository bound to this unit of work.
	ProductRepository() ProductRepository

	// UserRepository returns the user repository bound to this unit of work.
	UserRepository() UserRepository

	// PickupLocationRepository returns the pickup location repository bound
	// to this unit of work.
	PickupLocationRepository() PickupLocationRepository
}

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. Each unit of work owns at most one transaction, which
// ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
