package kernel

// Entity is the base embedded by every persisted entity. It carries the
// store-assigned identifier and the optimistic concurrency version counter.
//
// An entity with ID 0 has never been saved. The version starts at 0 on the
// first save and is incremented by the store on every successful update; a
// save that targets a stale version fails with a concurrent modification
// error instead of silently overwriting.
type Entity struct {
	id      int64
	version int64
}

// RestoreEntity rebuilds the persisted identity of an entity. It is intended
// for the persistence layer when mapping storage rows back into the domain.
func RestoreEntity(id int64, version int64) Entity {
	return Entity{id: id, version: version}
}

// ID returns the store-assigned identifier, or 0 if the entity was never saved.
func (e *Entity) ID() int64 {
	return e.id
}

// Version returns the optimistic concurrency counter.
func (e *Entity) Version() int64 {
	return e.version
}

// IsNew reports whether the entity has been saved yet.
func (e *Entity) IsNew() bool {
	return e.id == 0
}

// MarkPersisted stamps the identity assigned by the store after a successful
// write. It is intended for the persistence layer only.
func (e *Entity) MarkPersisted(id int64, version int64) {
	e.id = id
	e.version = version
}

// SameIdentity reports whether two entities share id and version. Combined
// with a concrete-type check by the caller this is the entity equality rule:
// same type, same id, same version.
func (e *Entity) SameIdentity(other *Entity) bool {
	return other != nil && e.id == other.id && e.version == other.version
}
