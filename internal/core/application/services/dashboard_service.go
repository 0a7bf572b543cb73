package services

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// DeliveryStats is the headline counter row of the dashboard.
type DeliveryStats struct {
	DueToday          int
	DueTomorrow       int
	DeliveredToday    int
	NotAvailableToday int
	NewOrders         int
}

// DashboardData aggregates everything the dashboard renders in one call.
// Time series use nil entries where no data exists, so charts can
// distinguish "no deliveries recorded" from an actual zero.
type DashboardData struct {
	DeliveryStats DeliveryStats

	// DeliveriesThisMonth has one entry per day of the requested month.
	DeliveriesThisMonth []*int

	// DeliveriesThisYear has one entry per month of the requested year.
	DeliveriesThisYear []*int

	// SalesPerMonth holds delivered sales in cents for the requested year
	// (row 0) and the two years before it. The cell for the requested
	// month itself stays nil as its data is still incomplete.
	SalesPerMonth [3][12]*int64

	// ProductDeliveries lists delivered quantities per product for the
	// requested month, ordered by product id.
	ProductDeliveries []ports.ProductCount
}

// notAvailableStates are the states counted as "not available" for orders
// due today: everything not yet ready, delivered or called off.
var notAvailableStates = []order.State{order.New, order.Confirmed, order.Problem}

// DashboardService computes the aggregate numbers behind the storefront
// dashboard. All methods are read-only.
type DashboardService struct {
	uowFactory ports.UnitOfWorkFactory
	now        func() time.Time
}

// NewDashboardService creates a DashboardService backed by the given unit
// of work factory.
func NewDashboardService(uowFactory ports.UnitOfWorkFactory) (*DashboardService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &DashboardService{
		uowFactory: uowFactory,
		now:        time.Now,
	}, nil
}

// SetClock overrides the time source used to resolve "today". Intended for
// tests.
func (s *DashboardService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// GetDeliveryStats computes the headline counters for today.
func (s *DashboardService) GetDeliveryStats(ctx context.Context) (DeliveryStats, error) {
	uow := s.uowFactory.Create()
	return s.deliveryStats(ctx, uow.OrderRepository())
}

// GetDashboardData assembles the full dashboard for the given month and
// year. The month is 1-based.
func (s *DashboardService) GetDashboardData(ctx context.Context, month, year int) (DashboardData, error) {
	if month < 1 || month > 12 {
		return DashboardData{}, errs.NewValueIsOutOfRangeError("month", month, 1, 12)
	}

	uow := s.uowFactory.Create()
	repo := uow.OrderRepository()

	var data DashboardData
	var err error

	if data.DeliveryStats, err = s.deliveryStats(ctx, repo); err != nil {
		return DashboardData{}, err
	}
	if data.DeliveriesThisMonth, err = s.deliveriesPerDay(ctx, repo, month, year); err != nil {
		return DashboardData{}, err
	}
	if data.DeliveriesThisYear, err = s.deliveriesPerMonth(ctx, repo, year); err != nil {
		return DashboardData{}, err
	}
	if data.SalesPerMonth, err = s.salesPerMonth(ctx, repo, month, year); err != nil {
		return DashboardData{}, err
	}
	if data.ProductDeliveries, err = repo.CountPerProduct(ctx, year, month); err != nil {
		return DashboardData{}, err
	}
	return data, nil
}

func (s *DashboardService) deliveryStats(ctx context.Context, repo ports.OrderRepository) (DeliveryStats, error) {
	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)

	var stats DeliveryStats
	counters := []struct {
		dest  *int
		count func() (int64, error)
	}{
		{&stats.DueToday, func() (int64, error) { return repo.CountByDueDate(ctx, today) }},
		{&stats.DueTomorrow, func() (int64, error) { return repo.CountByDueDate(ctx, tomorrow) }},
		{&stats.DeliveredToday, func() (int64, error) {
			return repo.CountByDueDateAndStateIn(ctx, today, []order.State{order.Delivered})
		}},
		{&stats.NotAvailableToday, func() (int64, error) {
			return repo.CountByDueDateAndStateIn(ctx, today, notAvailableStates)
		}},
		{&stats.NewOrders, func() (int64, error) { return repo.CountByState(ctx, order.New) }},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return DeliveryStats{}, err
		}
		*c.dest = int(n)
	}
	return stats, nil
}

func (s *DashboardService) deliveriesPerDay(ctx context.Context, repo ports.OrderRepository, month, year int) ([]*int, error) {
	from := s.date(year, month, 1)
	to := from.AddDate(0, 1, 0)

	counts, err := repo.CountPerDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	days := to.AddDate(0, 0, -1).Day()
	series := make([]*int, days)
	for _, c := range counts {
		day := c.Date.Day()
		if day < 1 || day > days {
			continue
		}
		n := c.Count
		series[day-1] = &n
	}
	return series, nil
}

func (s *DashboardService) deliveriesPerMonth(ctx context.Context, repo ports.OrderRepository, year int) ([]*int, error) {
	from := s.date(year, 1, 1)
	to := from.AddDate(1, 0, 0)

	counts, err := repo.CountPerMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}

	series := make([]*int, 12)
	for _, c := range counts {
		if c.Year != year || c.Month < 1 || c.Month > 12 {
			continue
		}
		n := c.Count
		series[c.Month-1] = &n
	}
	return series, nil
}

func (s *DashboardService) salesPerMonth(ctx context.Context, repo ports.OrderRepository, month, year int) ([3][12]*int64, error) {
	var matrix [3][12]*int64

	from := s.date(year-3, 1, 1)
	to := s.date(year+1, 1, 1)

	sales, err := repo.SumSalesPerMonth(ctx, from, to)
	if err != nil {
		return matrix, err
	}

	for _, sale := range sales {
		row := year - sale.Year
		col := sale.Month - 1
		if row == 0 && sale.Month == month {
			// the requested month is still running, its total is incomplete
			continue
		}
		if row < 0 || row > 2 || col < 0 || col > 11 {
			continue
		}
		total := sale.Total
		matrix[row][col] = &total
	}
	return matrix, nil
}

func (s *DashboardService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *DashboardService) date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, s.now().Location())
}
