package order

import (
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/pkg/errs"
)

const maxCommentLength = 255

// OrderItem is one line of an order: a product reference, a quantity and an
// optional comment. Items are owned by their order and persisted with it.
type OrderItem struct {
	kernel.Entity

	product  *product.Product
	quantity int
	comment  string
}

// NewItem creates an order item with the default quantity of 1.
func NewItem() *OrderItem {
	return &OrderItem{quantity: 1}
}

// RestoreItem rebuilds an item from storage. Intended for the persistence
// layer.
func RestoreItem(id, version int64, p *product.Product, quantity int, comment string) *OrderItem {
	item := &OrderItem{product: p, quantity: quantity, comment: comment}
	item.Entity = kernel.RestoreEntity(id, version)
	return item
}

func (i *OrderItem) Product() *product.Product {
	return i.product
}

func (i *OrderItem) SetProduct(p *product.Product) {
	i.product = p
}

func (i *OrderItem) Quantity() int {
	return i.quantity
}

func (i *OrderItem) SetQuantity(quantity int) {
	i.quantity = quantity
}

func (i *OrderItem) Comment() string {
	return i.comment
}

func (i *OrderItem) SetComment(comment string) {
	i.comment = comment
}

// TotalPrice returns quantity times the product price in cents. A missing
// product prices the line at 0 rather than failing; validation catches the
// missing reference separately.
func (i *OrderItem) TotalPrice() int {
	if i.product == nil {
		return 0
	}
	return i.quantity * i.product.Price()
}

func (i *OrderItem) violations(field string) []errs.FieldViolation {
	var violations []errs.FieldViolation

	if i.product == nil {
		violations = append(violations, errs.FieldViolation{Field: field + ".product", Message: "is required"})
	}
	if i.quantity < 1 {
		violations = append(violations, errs.FieldViolation{Field: field + ".quantity", Message: "must be at least 1"})
	}
	if len(i.comment) > maxCommentLength {
		violations = append(violations, errs.FieldViolation{Field: field + ".comment", Message: "must be at most 255 characters"})
	}

	return violations
}
