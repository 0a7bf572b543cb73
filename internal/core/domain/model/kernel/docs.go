// Package kernel contains the building blocks shared by every entity in the
// domain model: the persisted-entity base with its identifier and optimistic
// concurrency version, and small validated value objects such as TimeOfDay.
//
// The persistence layer owns identifier and version assignment. Domain code
// never sets them directly; adapters stamp them after a successful write and
// restore them when rebuilding entities from storage.
package kernel
