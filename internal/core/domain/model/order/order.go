package order

import (
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"
)

// placedMessage is the message of the synthetic history entry appended when
// an order is created.
const placedMessage = "Order placed"

// Order is the aggregate root. It owns its customer, its item list and its
// append-only history log; all of them are persisted atomically with the
// order itself.
type Order struct {
	kernel.Entity

	dueDate        time.Time
	dueTime        kernel.TimeOfDay
	pickupLocation *pickup.Location
	customer       *Customer
	items          []*OrderItem
	state          State
	history        []*HistoryItem
}

// NewOrder creates an order in the New state, owned by the acting user: the
// customer is an empty owned value, the item list is empty but non-nil, and
// the history opens with an "Order placed" entry attributed to createdBy.
func NewOrder(createdBy *user.User) *Order {
	o := &Order{
		state: New,
		items: make([]*OrderItem, 0),
	}
	o.customer = NewCustomer()
	o.AddHistoryItem(createdBy, placedMessage)
	return o
}

// Restore rebuilds an order from storage without validation. Intended for the
// persistence layer.
func Restore(
	id, version int64,
	dueDate time.Time,
	dueTime kernel.TimeOfDay,
	pickupLocation *pickup.Location,
	customer *Customer,
	items []*OrderItem,
	state State,
	history []*HistoryItem,
) *Order {
	o := &Order{
		dueDate:        dueDate,
		dueTime:        dueTime,
		pickupLocation: pickupLocation,
		customer:       customer,
		items:          items,
		state:          state,
		history:        history,
	}
	o.Entity = kernel.RestoreEntity(id, version)
	return o
}

func (o *Order) DueDate() time.Time {
	return o.dueDate
}

func (o *Order) SetDueDate(dueDate time.Time) {
	o.dueDate = dueDate
}

func (o *Order) DueTime() kernel.TimeOfDay {
	return o.dueTime
}

func (o *Order) SetDueTime(dueTime kernel.TimeOfDay) {
	o.dueTime = dueTime
}

func (o *Order) PickupLocation() *pickup.Location {
	return o.pickupLocation
}

func (o *Order) SetPickupLocation(location *pickup.Location) {
	o.pickupLocation = location
}

func (o *Order) Customer() *Customer {
	return o.customer
}

func (o *Order) SetCustomer(customer *Customer) {
	o.customer = customer
}

func (o *Order) Items() []*OrderItem {
	return o.items
}

func (o *Order) SetItems(items []*OrderItem) {
	o.items = items
}

// History returns the audit log in append order.
func (o *Order) History() []*HistoryItem {
	return o.history
}

// SetHistory replaces the audit log. Intended for the persistence layer.
func (o *Order) SetHistory(history []*HistoryItem) {
	o.history = history
}

func (o *Order) State() State {
	return o.state
}

// ChangeState sets the order state. When the new state differs from the
// current one and both are defined, exactly one history entry labeled with
// the new state's display name is appended; otherwise the state is set
// silently. No transition-legality table is enforced.
func (o *Order) ChangeState(actingUser *user.User, state State) {
	createHistory := o.state != state && o.state.IsDefined() && state.IsDefined()
	o.state = state
	if createHistory {
		o.AddHistoryItem(actingUser, fmt.Sprintf("Order %s", state.DisplayName()))
	}
}

// AddHistoryItem appends an entry carrying the order's current state as its
// snapshot and the given message. Used internally for state changes and
// externally for free-text comments.
func (o *Order) AddHistoryItem(createdBy *user.User, message string) {
	item := NewHistoryItem(createdBy, message)
	item.SetNewState(o.state)
	o.history = append(o.history, item)
}

// TotalPrice returns the sum of the item total prices in cents. It never
// fails; items with a missing product contribute 0.
func (o *Order) TotalPrice() int {
	total := 0
	for _, item := range o.items {
		total += item.TotalPrice()
	}
	return total
}

// IsEqual implements the entity equality rule: same concrete type, same id,
// same version.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.SameIdentity(&other.Entity)
}

// Validate checks every field constraint on the order and its owned customer,
// items and history entries, returning a ValidationError that lists all
// violations, or nil when the order is valid.
func (o *Order) Validate() error {
	var violations []errs.FieldViolation

	if o.dueDate.IsZero() {
		violations = append(violations, errs.FieldViolation{Field: "dueDate", Message: "is required"})
	}
	if !o.dueTime.IsSet() {
		violations = append(violations, errs.FieldViolation{Field: "dueTime", Message: "is required"})
	}
	if o.pickupLocation == nil {
		violations = append(violations, errs.FieldViolation{Field: "pickupLocation", Message: "is required"})
	}
	if !o.state.IsDefined() {
		violations = append(violations, errs.FieldViolation{Field: "state", Message: "is required"})
	}

	if o.customer == nil {
		violations = append(violations, errs.FieldViolation{Field: "customer", Message: "is required"})
	} else {
		violations = append(violations, o.customer.violations()...)
	}

	if len(o.items) == 0 {
		violations = append(violations, errs.FieldViolation{Field: "items", Message: "must not be empty"})
	}
	for i, item := range o.items {
		violations = append(violations, item.violations(fmt.Sprintf("items[%d]", i))...)
	}
	for i, entry := range o.history {
		violations = append(violations, entry.violations(fmt.Sprintf("history[%d]", i))...)
	}

	if len(violations) > 0 {
		return errs.NewValidationError("Order", violations...)
	}
	return nil
}
