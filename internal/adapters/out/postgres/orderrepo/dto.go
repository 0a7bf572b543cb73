// Package orderrepo persists the order aggregate with GORM: the order row,
// its owned customer, its item list and its append-only history log are
// written together and loaded back as one graph.
package orderrepo

import (
	"time"

	"bakery/internal/adapters/out/postgres/locationrepo"
	"bakery/internal/adapters/out/postgres/productrepo"
	"bakery/internal/adapters/out/postgres/userrepo"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/pickup"
)

// OrderDTO is the database row behind an order. Due date and state carry
// indexes because the order board and the dashboard filter on them.
type OrderDTO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	Version int64     `gorm:"not null"`
	DueDate time.Time `gorm:"type:date;not null;index"`
	DueTime *string   `gorm:"size:5"`
	State   string    `gorm:"size:16;not null;index"`

	PickupLocationID int64
	PickupLocation   *locationrepo.LocationDTO `gorm:"foreignKey:PickupLocationID"`

	CustomerID int64
	Customer   *CustomerDTO `gorm:"foreignKey:CustomerID"`

	Items   []ItemDTO    `gorm:"foreignKey:OrderID"`
	History []HistoryDTO `gorm:"foreignKey:OrderID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO is the database row behind an order's owned customer.
type CustomerDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Version     int64  `gorm:"not null"`
	FullName    string `gorm:"size:255;not null"`
	PhoneNumber string `gorm:"size:255;not null"`
	Details     string `gorm:"size:255"`
}

// TableName overrides GORM's default naming to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// ItemDTO is the database row behind one order line. Position keeps the
// line order stable across reloads.
type ItemDTO struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	Version  int64 `gorm:"not null"`
	OrderID  int64 `gorm:"not null;index"`
	Position int   `gorm:"not null"`

	ProductID int64
	Product   *productrepo.ProductDTO `gorm:"foreignKey:ProductID"`

	Quantity int    `gorm:"not null"`
	Comment  string `gorm:"size:255"`
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is the database row behind one audit log entry. Rows are only
// ever inserted; Position keeps the append order stable across reloads.
type HistoryDTO struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	Version  int64 `gorm:"not null"`
	OrderID  int64 `gorm:"not null;index"`
	Position int   `gorm:"not null"`

	NewState  string    `gorm:"size:16;not null"`
	Message   string    `gorm:"size:255;not null"`
	Timestamp time.Time `gorm:"not null"`

	CreatedByID *int64
	CreatedBy   *userrepo.UserDTO `gorm:"foreignKey:CreatedByID"`
}

// TableName overrides GORM's default naming to use "order_history".
func (HistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:      o.ID(),
		Version: o.Version(),
		DueDate: o.DueDate(),
		State:   o.State().String(),
	}
	if o.DueTime().IsSet() {
		s := o.DueTime().String()
		dto.DueTime = &s
	}
	if loc := o.PickupLocation(); loc != nil {
		dto.PickupLocationID = loc.ID()
	}
	if c := o.Customer(); c != nil {
		dto.CustomerID = c.ID()
		dto.Customer = &CustomerDTO{
			ID:          c.ID(),
			Version:     c.Version(),
			FullName:    c.FullName(),
			PhoneNumber: c.PhoneNumber(),
			Details:     c.Details(),
		}
	}
	for i, item := range o.Items() {
		dto.Items = append(dto.Items, itemFromDomain(o.ID(), i, item))
	}
	for i, entry := range o.History() {
		dto.History = append(dto.History, historyFromDomain(o.ID(), i, entry))
	}
	return dto
}

func itemFromDomain(orderID int64, position int, item *order.OrderItem) ItemDTO {
	dto := ItemDTO{
		ID:       item.ID(),
		Version:  item.Version(),
		OrderID:  orderID,
		Position: position,
		Quantity: item.Quantity(),
		Comment:  item.Comment(),
	}
	if p := item.Product(); p != nil {
		dto.ProductID = p.ID()
	}
	return dto
}

func historyFromDomain(orderID int64, position int, entry *order.HistoryItem) HistoryDTO {
	dto := HistoryDTO{
		ID:        entry.ID(),
		Version:   entry.Version(),
		OrderID:   orderID,
		Position:  position,
		NewState:  entry.NewState().String(),
		Message:   entry.Message(),
		Timestamp: entry.Timestamp(),
	}
	if u := entry.CreatedBy(); u != nil {
		id := u.ID()
		dto.CreatedByID = &id
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	state, err := order.StateFromString(dto.State)
	if err != nil {
		return nil, err
	}

	var dueTime kernel.TimeOfDay
	if dto.DueTime != nil {
		dueTime, err = kernel.ParseTimeOfDay(*dto.DueTime)
		if err != nil {
			return nil, err
		}
	}

	var customer *order.Customer
	if dto.Customer != nil {
		customer = order.RestoreCustomer(dto.Customer.ID, dto.Customer.Version,
			dto.Customer.FullName, dto.Customer.PhoneNumber, dto.Customer.Details)
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, itemToDomain(item))
	}

	history := make([]*order.HistoryItem, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, historyToDomain(entry))
	}

	return order.Restore(dto.ID, dto.Version, dto.DueDate, dueTime,
		locationToDomain(dto.PickupLocation), customer, items, state, history), nil
}

func locationToDomain(dto *locationrepo.LocationDTO) *pickup.Location {
	if dto == nil {
		return nil
	}
	return locationrepo.ToDomain(*dto)
}

func itemToDomain(dto ItemDTO) *order.OrderItem {
	item := order.RestoreItem(dto.ID, dto.Version, nil, dto.Quantity, dto.Comment)
	if dto.Product != nil {
		item.SetProduct(productrepo.ToDomain(*dto.Product))
	}
	return item
}

func historyToDomain(dto HistoryDTO) *order.HistoryItem {
	state, err := order.StateFromString(dto.NewState)
	if err != nil {
		state = order.Undefined
	}

	entry := order.RestoreHistoryItem(dto.ID, dto.Version, state, dto.Message, dto.Timestamp, nil)
	if dto.CreatedBy != nil {
		entry.SetCreatedBy(userrepo.ToDomain(*dto.CreatedBy))
	}
	return entry
}
