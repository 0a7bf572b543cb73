// Package user contains the application user entity and its role constants.
// Users act on orders (every history entry records who made the change) and
// are themselves managed through the filterable CRUD service contract.
package user

import (
	"regexp"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

const maxFieldLength = 255

const minPasswordHashLength = 4

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a persisted application user. A locked user cannot be modified or
// deleted through the user service.
type User struct {
	kernel.Entity

	email        string
	passwordHash string
	firstName    string
	lastName     string
	role         string
	locked       bool
}

// New creates a transient, unsaved user with no fields set.
func New() *User {
	return &User{}
}

// Restore rebuilds a user from storage. Intended for the persistence layer.
func Restore(id, version int64, email, passwordHash, firstName, lastName, role string, locked bool) *User {
	u := &User{
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		role:         role,
		locked:       locked,
	}
	u.Entity = kernel.RestoreEntity(id, version)
	return u
}

func (u *User) Email() string {
	return u.email
}

func (u *User) SetEmail(email string) {
	u.email = email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) SetPasswordHash(passwordHash string) {
	u.passwordHash = passwordHash
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) SetFirstName(firstName string) {
	u.firstName = firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) SetLastName(lastName string) {
	u.lastName = lastName
}

func (u *User) Role() string {
	return u.role
}

func (u *User) SetRole(role string) {
	u.role = role
}

func (u *User) IsLocked() bool {
	return u.locked
}

func (u *User) SetLocked(locked bool) {
	u.locked = locked
}

// IsEqual implements the entity equality rule: same concrete type, same id,
// same version.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.SameIdentity(&other.Entity)
}

// Validate checks all field constraints and returns a ValidationError listing
// every violation, or nil when the user is valid.
func (u *User) Validate() error {
	var violations []errs.FieldViolation

	switch {
	case u.email == "":
		violations = append(violations, errs.FieldViolation{Field: "email", Message: "is required"})
	case len(u.email) > maxFieldLength:
		violations = append(violations, errs.FieldViolation{Field: "email", Message: "must be at most 255 characters"})
	case !emailPattern.MatchString(u.email):
		violations = append(violations, errs.FieldViolation{Field: "email", Message: "must be a well-formed email address"})
	}

	if len(u.passwordHash) < minPasswordHashLength || len(u.passwordHash) > maxFieldLength {
		violations = append(violations, errs.FieldViolation{Field: "passwordHash", Message: "must be between 4 and 255 characters"})
	}

	if u.firstName == "" {
		violations = append(violations, errs.FieldViolation{Field: "firstName", Message: "is required"})
	} else if len(u.firstName) > maxFieldLength {
		violations = append(violations, errs.FieldViolation{Field: "firstName", Message: "must be at most 255 characters"})
	}

	if u.lastName == "" {
		violations = append(violations, errs.FieldViolation{Field: "lastName", Message: "is required"})
	} else if len(u.lastName) > maxFieldLength {
		violations = append(violations, errs.FieldViolation{Field: "lastName", Message: "must be at most 255 characters"})
	}

	if u.role == "" {
		violations = append(violations, errs.FieldViolation{Field: "role", Message: "is required"})
	} else if !IsRole(u.role) {
		violations = append(violations, errs.FieldViolation{Field: "role", Message: "must be one of the known roles"})
	}

	if len(violations) > 0 {
		return errs.NewValidationError("User", violations...)
	}
	return nil
}
