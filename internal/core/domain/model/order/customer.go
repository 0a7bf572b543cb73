package order

import (
	"regexp"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

const (
	maxCustomerFieldLength = 255
	maxPhoneNumberLength   = 20
)

var phonePattern = regexp.MustCompile(`^(\+\d+)?([ -]?\d+){4,14}$`)

// Customer is the contact information owned by a single order. It is created
// and destroyed with the order and is never referenced independently.
type Customer struct {
	kernel.Entity

	fullName    string
	phoneNumber string
	details     string
}

// NewCustomer creates an empty customer for a fresh order.
func NewCustomer() *Customer {
	return &Customer{}
}

// RestoreCustomer rebuilds a customer from storage. Intended for the
// persistence layer.
func RestoreCustomer(id, version int64, fullName, phoneNumber, details string) *Customer {
	c := &Customer{fullName: fullName, phoneNumber: phoneNumber, details: details}
	c.Entity = kernel.RestoreEntity(id, version)
	return c
}

func (c *Customer) FullName() string {
	return c.fullName
}

func (c *Customer) SetFullName(fullName string) {
	c.fullName = fullName
}

func (c *Customer) PhoneNumber() string {
	return c.phoneNumber
}

func (c *Customer) SetPhoneNumber(phoneNumber string) {
	c.phoneNumber = phoneNumber
}

func (c *Customer) Details() string {
	return c.details
}

func (c *Customer) SetDetails(details string) {
	c.details = details
}

// violations lists field constraint failures, prefixed with "customer.",
// for inclusion in the order's validation result.
func (c *Customer) violations() []errs.FieldViolation {
	var violations []errs.FieldViolation

	if c.fullName == "" {
		violations = append(violations, errs.FieldViolation{Field: "customer.fullName", Message: "is required"})
	} else if len(c.fullName) > maxCustomerFieldLength {
		violations = append(violations, errs.FieldViolation{Field: "customer.fullName", Message: "must be at most 255 characters"})
	}

	switch {
	case c.phoneNumber == "":
		violations = append(violations, errs.FieldViolation{Field: "customer.phoneNumber", Message: "is required"})
	case len(c.phoneNumber) > maxPhoneNumberLength:
		violations = append(violations, errs.FieldViolation{Field: "customer.phoneNumber", Message: "must be at most 20 characters"})
	case !phonePattern.MatchString(c.phoneNumber):
		violations = append(violations, errs.FieldViolation{Field: "customer.phoneNumber", Message: "must be a valid phone number"})
	}

	if len(c.details) > maxCustomerFieldLength {
		violations = append(violations, errs.FieldViolation{Field: "customer.details", Message: "must be at most 255 characters"})
	}

	return violations
}

// Validate checks the customer on its own and returns a ValidationError, or
// nil when it is valid.
func (c *Customer) Validate() error {
	if violations := c.violations(); len(violations) > 0 {
		return errs.NewValidationError("Customer", violations...)
	}
	return nil
}
