// Package pickup contains the pickup location reference entity. Orders point
// at a location; locations are managed through the filterable CRUD contract
// and carry a unique name as their only invariant.
package pickup

import (
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

const maxNameLength = 255

// Location is a place where a customer picks up an order.
type Location struct {
	kernel.Entity

	name string
}

// New creates a transient, unsaved pickup location.
func New() *Location {
	return &Location{}
}

// Restore rebuilds a location from storage. Intended for the persistence layer.
func Restore(id, version int64, name string) *Location {
	l := &Location{name: name}
	l.Entity = kernel.RestoreEntity(id, version)
	return l
}

func (l *Location) Name() string {
	return l.name
}

func (l *Location) SetName(name string) {
	l.name = name
}

// IsEqual implements the entity equality rule: same concrete type, same id,
// same version.
func (l *Location) IsEqual(other *Location) bool {
	return other != nil && l.SameIdentity(&other.Entity)
}

// Validate checks the name constraint and returns a ValidationError, or nil.
func (l *Location) Validate() error {
	var violations []errs.FieldViolation

	if l.name == "" {
		violations = append(violations, errs.FieldViolation{Field: "name", Message: "is required"})
	} else if len(l.name) > maxNameLength {
		violations = append(violations, errs.FieldViolation{Field: "name", Message: "must be at most 255 characters"})
	}

	if len(violations) > 0 {
		return errs.NewValidationError("PickupLocation", violations...)
	}
	return nil
}
