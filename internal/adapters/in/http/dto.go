package http

import (
	"time"

	"bakery/internal/core/application/services"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/domain/model/user"
)

const dateLayout = "2006-01-02"

// Error is the JSON error envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ListResponse wraps a page of results with the total match count.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}

type ProductRequest struct {
	Version int64  `json:"version"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
}

type ProductResponse struct {
	ID      int64  `json:"id"`
	Version int64  `json:"version"`
	Name    string `json:"name"`
	Price   int    `json:"price"`
}

func toProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{ID: p.ID(), Version: p.Version(), Name: p.Name(), Price: p.Price()}
}

type UserRequest struct {
	Version      int64  `json:"version"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	Locked       bool   `json:"locked"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        int64  `json:"id"`
	Version   int64  `json:"version"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Locked    bool   `json:"locked"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Version:   u.Version(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role(),
		Locked:    u.IsLocked(),
	}
}

type PickupLocationRequest struct {
	Version int64  `json:"version"`
	Name    string `json:"name"`
}

type PickupLocationResponse struct {
	ID      int64  `json:"id"`
	Version int64  `json:"version"`
	Name    string `json:"name"`
}

func toPickupLocationResponse(l *pickup.Location) PickupLocationResponse {
	return PickupLocationResponse{ID: l.ID(), Version: l.Version(), Name: l.Name()}
}

type CustomerPayload struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Details     string `json:"details,omitempty"`
}

type OrderItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Comment   string `json:"comment,omitempty"`
}

type OrderRequest struct {
	DueDate          string             `json:"dueDate"`
	DueTime          string             `json:"dueTime"`
	PickupLocationID int64              `json:"pickupLocationId"`
	State            string             `json:"state,omitempty"`
	Customer         CustomerPayload    `json:"customer"`
	Items            []OrderItemRequest `json:"items"`
}

type OrderItemResponse struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Comment     string `json:"comment,omitempty"`
	TotalPrice  int    `json:"totalPrice"`
}

type HistoryItemResponse struct {
	State     string    `json:"state"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

type OrderResponse struct {
	ID             int64                   `json:"id"`
	Version        int64                   `json:"version"`
	State          string                  `json:"state"`
	DueDate        string                  `json:"dueDate"`
	DueTime        string                  `json:"dueTime,omitempty"`
	PickupLocation *PickupLocationResponse `json:"pickupLocation,omitempty"`
	Customer       CustomerPayload         `json:"customer"`
	Items          []OrderItemResponse     `json:"items"`
	History        []HistoryItemResponse   `json:"history,omitempty"`
	TotalPrice     int                     `json:"totalPrice"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID(),
		Version:    o.Version(),
		State:      o.State().String(),
		DueDate:    o.DueDate().Format(dateLayout),
		Items:      make([]OrderItemResponse, 0, len(o.Items())),
		TotalPrice: o.TotalPrice(),
	}
	if o.DueTime().IsSet() {
		resp.DueTime = o.DueTime().String()
	}
	if loc := o.PickupLocation(); loc != nil {
		l := toPickupLocationResponse(loc)
		resp.PickupLocation = &l
	}
	if c := o.Customer(); c != nil {
		resp.Customer = CustomerPayload{
			FullName:    c.FullName(),
			PhoneNumber: c.PhoneNumber(),
			Details:     c.Details(),
		}
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}
	for _, entry := range o.History() {
		h := HistoryItemResponse{
			State:     entry.NewState().String(),
			Message:   entry.Message(),
			Timestamp: entry.Timestamp(),
		}
		if u := entry.CreatedBy(); u != nil {
			h.CreatedBy = u.Email()
		}
		resp.History = append(resp.History, h)
	}
	return resp
}

func toOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	resp := OrderItemResponse{
		Quantity:   item.Quantity(),
		Comment:    item.Comment(),
		TotalPrice: item.TotalPrice(),
	}
	if p := item.Product(); p != nil {
		resp.ProductID = p.ID()
		resp.ProductName = p.Name()
	}
	return resp
}

type OrderSummaryResponse struct {
	ID             int64                   `json:"id"`
	State          string                  `json:"state"`
	DueDate        string                  `json:"dueDate"`
	DueTime        string                  `json:"dueTime,omitempty"`
	PickupLocation *PickupLocationResponse `json:"pickupLocation,omitempty"`
	Customer       CustomerPayload         `json:"customer"`
	Items          []OrderItemResponse     `json:"items"`
	TotalPrice     int                     `json:"totalPrice"`
}

func toOrderSummaryResponse(s *order.Summary) OrderSummaryResponse {
	resp := OrderSummaryResponse{
		ID:         s.ID,
		State:      s.State.String(),
		DueDate:    s.DueDate.Format(dateLayout),
		Items:      make([]OrderItemResponse, 0, len(s.Items)),
		TotalPrice: s.TotalPrice(),
	}
	if s.DueTime.IsSet() {
		resp.DueTime = s.DueTime.String()
	}
	if s.PickupLocation != nil {
		l := toPickupLocationResponse(s.PickupLocation)
		resp.PickupLocation = &l
	}
	if s.Customer != nil {
		resp.Customer = CustomerPayload{
			FullName:    s.Customer.FullName(),
			PhoneNumber: s.Customer.PhoneNumber(),
			Details:     s.Customer.Details(),
		}
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, toOrderItemResponse(item))
	}
	return resp
}

type CommentRequest struct {
	Message string `json:"message"`
}

type StateRequest struct {
	State string `json:"state"`
}

type DeliveryStatsResponse struct {
	DueToday          int `json:"dueToday"`
	DueTomorrow       int `json:"dueTomorrow"`
	DeliveredToday    int `json:"deliveredToday"`
	NotAvailableToday int `json:"notAvailableToday"`
	NewOrders         int `json:"newOrders"`
}

func toDeliveryStatsResponse(stats services.DeliveryStats) DeliveryStatsResponse {
	return DeliveryStatsResponse(stats)
}

type ProductDeliveryResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

type DashboardResponse struct {
	DeliveryStats       DeliveryStatsResponse     `json:"deliveryStats"`
	DeliveriesThisMonth []*int                    `json:"deliveriesThisMonth"`
	DeliveriesThisYear  []*int                    `json:"deliveriesThisYear"`
	SalesPerMonth       [][]*int64                `json:"salesPerMonth"`
	ProductDeliveries   []ProductDeliveryResponse `json:"productDeliveries"`
}

func toDashboardResponse(data services.DashboardData) DashboardResponse {
	resp := DashboardResponse{
		DeliveryStats:       toDeliveryStatsResponse(data.DeliveryStats),
		DeliveriesThisMonth: data.DeliveriesThisMonth,
		DeliveriesThisYear:  data.DeliveriesThisYear,
		SalesPerMonth:       make([][]*int64, 0, len(data.SalesPerMonth)),
		ProductDeliveries:   make([]ProductDeliveryResponse, 0, len(data.ProductDeliveries)),
	}
	for _, row := range data.SalesPerMonth {
		resp.SalesPerMonth = append(resp.SalesPerMonth, row[:])
	}
	for _, pd := range data.ProductDeliveries {
		resp.ProductDeliveries = append(resp.ProductDeliveries, ProductDeliveryResponse{
			Product:  toProductResponse(pd.Product),
			Quantity: pd.Quantity,
		})
	}
	return resp
}

func toListResponse[T any, E any](items []E, total int64, convert func(E) T) ListResponse[T] {
	resp := ListResponse[T]{Items: make([]T, 0, len(items)), TotalCount: total}
	for _, item := range items {
		resp.Items = append(resp.Items, convert(item))
	}
	return resp
}
