package services_test

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock for FilterableRepository over any entity.
type MockRepository[T any] struct{ mock.Mock }

func (m *MockRepository[T]) FindByID(ctx context.Context, id int64) (T, error) {
	args := m.Called(ctx, id)
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Save(ctx context.Context, entity T) (T, error) {
	args := m.Called(ctx, entity)
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository[T]) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T]) FindPage(ctx context.Context, page ports.Page) ([]T, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) FindAnyMatching(ctx context.Context, filter string, page ports.Page) ([]T, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) CountAnyMatching(ctx context.Context, filter string) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a testify mock for ports.UserRepository.
type MockUserRepository struct {
	MockRepository[*user.User]
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockOrderRepository is a testify mock for ports.OrderRepository.
type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, page ports.Page) ([]*order.Order, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerName(ctx context.Context, name string, page ports.Page) ([]*order.Order, error) {
	args := m.Called(ctx, name, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByDueDateAfter(ctx context.Context, dueDate time.Time, page ports.Page) ([]*order.Order, error) {
	args := m.Called(ctx, dueDate, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerNameAndDueDateAfter(ctx context.Context, name string, dueDate time.Time, page ports.Page) ([]*order.Order, error) {
	args := m.Called(ctx, name, dueDate, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomerName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByDueDateAfter(ctx context.Context, dueDate time.Time) (int64, error) {
	args := m.Called(ctx, dueDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomerNameAndDueDateAfter(ctx context.Context, name string, dueDate time.Time) (int64, error) {
	args := m.Called(ctx, name, dueDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindSummariesByDueDateOnOrAfter(ctx context.Context, dueDate time.Time) ([]*order.Summary, error) {
	args := m.Called(ctx, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Summary), args.Error(1)
}

func (m *MockOrderRepository) CountByDueDate(ctx context.Context, dueDate time.Time) (int64, error) {
	args := m.Called(ctx, dueDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByDueDateAndStateIn(ctx context.Context, dueDate time.Time, states []order.State) (int64, error) {
	args := m.Called(ctx, dueDate, states)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByState(ctx context.Context, state order.State) (int64, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountPerDay(ctx context.Context, from, to time.Time) ([]ports.DayCount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.DayCount), args.Error(1)
}

func (m *MockOrderRepository) CountPerMonth(ctx context.Context, from, to time.Time) ([]ports.MonthCount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.MonthCount), args.Error(1)
}

func (m *MockOrderRepository) SumSalesPerMonth(ctx context.Context, from, to time.Time) ([]ports.MonthlySales, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.MonthlySales), args.Error(1)
}

func (m *MockOrderRepository) CountPerProduct(ctx context.Context, year, month int) ([]ports.ProductCount, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ProductCount), args.Error(1)
}

// MockUnitOfWork is a testify mock for ports.UnitOfWork.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUnitOfWork) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUnitOfWork) PickupLocationRepository() ports.PickupLocationRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupLocationRepository)
}

// MockUnitOfWorkFactory is a testify mock for ports.UnitOfWorkFactory.
type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}
