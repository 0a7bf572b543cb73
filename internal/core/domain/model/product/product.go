// Package product contains the product entity. Prices are stored as the
// monetary amount multiplied by 100 (integer cents) to avoid floating-point
// rounding in price arithmetic.
package product

import (
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
)

const maxNameLength = 255

// Price bounds in cents.
const (
	MinPrice = 0
	MaxPrice = 100000
)

// Product is a bakery product with a unique name and a price in cents.
type Product struct {
	kernel.Entity

	name  string
	price int
}

// New creates a transient, unsaved product.
func New() *Product {
	return &Product{}
}

// Restore rebuilds a product from storage. Intended for the persistence layer.
func Restore(id, version int64, name string, price int) *Product {
	p := &Product{name: name, price: price}
	p.Entity = kernel.RestoreEntity(id, version)
	return p
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) SetName(name string) {
	p.name = name
}

// Price returns the price in cents.
func (p *Product) Price() int {
	return p.price
}

// SetPrice sets the price in cents.
func (p *Product) SetPrice(price int) {
	p.price = price
}

// IsEqual implements the entity equality rule: same concrete type, same id,
// same version.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.SameIdentity(&other.Entity)
}

// Validate checks all field constraints and returns a ValidationError listing
// every violation, or nil when the product is valid.
func (p *Product) Validate() error {
	var violations []errs.FieldViolation

	if p.name == "" {
		violations = append(violations, errs.FieldViolation{Field: "name", Message: "is required"})
	} else if len(p.name) > maxNameLength {
		violations = append(violations, errs.FieldViolation{Field: "name", Message: "must be at most 255 characters"})
	}

	if p.price < MinPrice || p.price > MaxPrice {
		violations = append(violations, errs.FieldViolation{Field: "price", Message: "must be between 0 and 100000"})
	}

	if len(violations) > 0 {
		return errs.NewValidationError("Product", violations...)
	}
	return nil
}
