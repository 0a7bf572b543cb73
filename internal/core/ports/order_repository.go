package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/product"
)

// DayCount is the number of orders due on one day.
type DayCount struct {
	Date  time.Time
	Count int
}

// MonthCount is the number of orders due in one month.
type MonthCount struct {
	Year  int
	Month int
	Count int
}

// MonthlySales is the total value of delivered orders in one month, in cents.
type MonthlySales struct {
	Year  int
	Month int
	Total int64
}

// ProductCount is the total quantity of one product across the delivered
// orders of one month.
type ProductCount struct {
	Product  *product.Product
	Quantity int
}

// OrderRepository is the persistence port for the Order aggregate.
// Find methods that return full orders load the complete graph: customer,
// pickup location, items with their products, and history with authors.
// Paged list methods load the brief graph (customer and pickup location)
// and order by due date, then due time, then id.
type OrderRepository interface {
	// FindByID retrieves one order with its full graph,
	// failing with ObjectNotFoundError when absent.
	FindByID(ctx context.Context, id int64) (*order.Order, error)

	// Save persists the aggregate and every nested entity in one pass.
	// Updates are guarded by the aggregate version and fail with
	// ConcurrentModificationError when the stored version is stale.
	Save(ctx context.Context, o *order.Order) (*order.Order, error)

	// Count returns the total number of orders.
	Count(ctx context.Context) (int64, error)

	// FindAll returns one page of orders.
	FindAll(ctx context.Context, page Page) ([]*order.Order, error)

	// FindByCustomerName returns a page of orders whose customer full name
	// contains the filter text, case-insensitively.
	FindByCustomerName(ctx context.Context, name string, page Page) ([]*order.Order, error)

	// FindByDueDateAfter returns a page of orders due strictly after the date.
	FindByDueDateAfter(ctx context.Context, dueDate time.Time, page Page) ([]*order.Order, error)

	// FindByCustomerNameAndDueDateAfter combines both filters.
	FindByCustomerNameAndDueDateAfter(ctx context.Context, name string, dueDate time.Time, page Page) ([]*order.Order, error)

	// CountByCustomerName counts under the same rule as FindByCustomerName.
	CountByCustomerName(ctx context.Context, name string) (int64, error)

	// CountByDueDateAfter counts under the same rule as FindByDueDateAfter.
	CountByDueDateAfter(ctx context.Context, dueDate time.Time) (int64, error)

	// CountByCustomerNameAndDueDateAfter counts under both filters.
	CountByCustomerNameAndDueDateAfter(ctx context.Context, name string, dueDate time.Time) (int64, error)

	// FindSummariesByDueDateOnOrAfter returns lightweight summaries of every
	// order due on the date or later, with items and products loaded but
	// without history. Not paged.
	FindSummariesByDueDateOnOrAfter(ctx context.Context, dueDate time.Time) ([]*order.Summary, error)

	// CountByDueDate counts orders due exactly on the date.
	CountByDueDate(ctx context.Context, dueDate time.Time) (int64, error)

	// CountByDueDateAndStateIn counts orders due on the date whose state is
	// one of the given states.
	CountByDueDateAndStateIn(ctx context.Context, dueDate time.Time, states []order.State) (int64, error)

	// CountByState counts orders in the given state regardless of due date.
	CountByState(ctx context.Context, state order.State) (int64, error)

	// CountPerDay groups delivered orders by due date within [from, to).
	CountPerDay(ctx context.Context, from, to time.Time) ([]DayCount, error)

	// CountPerMonth groups delivered orders by due month within [from, to).
	CountPerMonth(ctx context.Context, from, to time.Time) ([]MonthCount, error)

	// SumSalesPerMonth sums the value of delivered orders per month
	// within [from, to).
	SumSalesPerMonth(ctx context.Context, from, to time.Time) ([]MonthlySales, error)

	// CountPerProduct sums delivered item quantities per product for
	// orders due in the given month, ordered by product id. The month is
	// 1-based.
	CountPerProduct(ctx context.Context, year, month int) ([]ProductCount, error)
}
