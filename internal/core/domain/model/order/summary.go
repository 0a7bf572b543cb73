package order

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/pickup"
)

// Summary is a read projection of an order for lightweight listing: it
// carries the fields the operational list needs, including the items the
// derived total price is computed from, but never the history graph.
type Summary struct {
	ID             int64
	State          State
	Customer       *Customer
	Items          []*OrderItem
	DueDate        time.Time
	DueTime        kernel.TimeOfDay
	PickupLocation *pickup.Location
}

// TotalPrice returns the sum of the item total prices in cents.
func (s Summary) TotalPrice() int {
	total := 0
	for _, item := range s.Items {
		total += item.TotalPrice()
	}
	return total
}
