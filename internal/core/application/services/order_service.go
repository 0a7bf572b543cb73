package services

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// defaultDueHour is the due time preset on newly created orders.
const defaultDueHour = 16

// OrderService carries the order workflow: creating and editing orders,
// commenting on them, and the filtered listings the order board is built
// from. Every mutation runs inside one unit of work transaction.
type OrderService struct {
	uowFactory ports.UnitOfWorkFactory
	now        func() time.Time
}

// NewOrderService creates an OrderService backed by the given unit of work
// factory.
func NewOrderService(uowFactory ports.UnitOfWorkFactory) (*OrderService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &OrderService{
		uowFactory: uowFactory,
		now:        time.Now,
	}, nil
}

// SetClock overrides the time source used to resolve "today". Intended for
// tests.
func (s *OrderService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateNew returns an unsaved order owned by the acting user, due today at
// the default pickup time.
func (s *OrderService) CreateNew(actor *user.User) *order.Order {
	o := order.NewOrder(actor)
	dueTime, _ := kernel.NewTimeOfDay(defaultDueHour, 0)
	o.SetDueTime(dueTime)
	o.SetDueDate(s.today())
	return o
}

// Load retrieves one order with its full graph.
func (s *OrderService) Load(ctx context.Context, id int64) (*order.Order, error) {
	uow := s.uowFactory.Create()
	return uow.OrderRepository().FindByID(ctx, id)
}

// Count returns the total number of orders.
func (s *OrderService) Count(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	return uow.OrderRepository().Count(ctx)
}

// SaveOrder loads the order with the given id, or creates a new one when the
// id is zero, lets fill mutate it, validates it and persists it atomically.
// The whole read-modify-write runs in one transaction so a concurrent edit
// surfaces as a ConcurrentModificationError instead of a lost update.
func (s *OrderService) SaveOrder(
	ctx context.Context,
	actor *user.User,
	id int64,
	fill func(actor *user.User, o *order.Order),
) (*order.Order, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	var o *order.Order
	if id == 0 {
		o = s.CreateNew(actor)
	} else {
		var err error
		o, err = repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if fill != nil {
		fill(actor, o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	saved, err := repo.Save(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

// Save validates and persists an already filled order in one transaction.
func (s *OrderService) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	if o == nil {
		return nil, errs.NewValueIsRequiredError("order")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saved, err := uow.OrderRepository().Save(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

// AddComment appends a free-text history entry, attributed to the acting
// user and stamped with the order's current state, and persists the order.
func (s *OrderService) AddComment(ctx context.Context, actor *user.User, orderID int64, comment string) (*order.Order, error) {
	if comment == "" {
		return nil, errs.NewValueIsRequiredError("comment")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.AddHistoryItem(actor, comment)

	saved, err := repo.Save(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

// FindAnyMatchingAfterDueDate returns a page of orders filtered by customer
// name and due date floor. An empty filter matches every customer; a zero
// dueDateFloor disables the date filter; the date filter is exclusive, it
// keeps orders due strictly after the floor.
func (s *OrderService) FindAnyMatchingAfterDueDate(
	ctx context.Context,
	filter string,
	dueDateFloor time.Time,
	page ports.Page,
) ([]*order.Order, error) {
	uow := s.uowFactory.Create()
	repo := uow.OrderRepository()

	switch {
	case filter != "" && !dueDateFloor.IsZero():
		return repo.FindByCustomerNameAndDueDateAfter(ctx, filter, dueDateFloor, page)
	case filter != "":
		return repo.FindByCustomerName(ctx, filter, page)
	case !dueDateFloor.IsZero():
		return repo.FindByDueDateAfter(ctx, dueDateFloor, page)
	default:
		return repo.FindAll(ctx, page)
	}
}

// CountAnyMatchingAfterDueDate counts under the same rules as
// FindAnyMatchingAfterDueDate.
func (s *OrderService) CountAnyMatchingAfterDueDate(
	ctx context.Context,
	filter string,
	dueDateFloor time.Time,
) (int64, error) {
	uow := s.uowFactory.Create()
	repo := uow.OrderRepository()

	switch {
	case filter != "" && !dueDateFloor.IsZero():
		return repo.CountByCustomerNameAndDueDateAfter(ctx, filter, dueDateFloor)
	case filter != "":
		return repo.CountByCustomerName(ctx, filter)
	case !dueDateFloor.IsZero():
		return repo.CountByDueDateAfter(ctx, dueDateFloor)
	default:
		return repo.Count(ctx)
	}
}

// FindAnyMatchingStartingToday returns summaries of every order due today
// or later, oldest due date first.
func (s *OrderService) FindAnyMatchingStartingToday(ctx context.Context) ([]*order.Summary, error) {
	uow := s.uowFactory.Create()
	return uow.OrderRepository().FindSummariesByDueDateOnOrAfter(ctx, s.today())
}

// today returns the current date with the time of day stripped.
func (s *OrderService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
