package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"bakery/internal/adapters/out/postgres/locationrepo"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/adapters/out/postgres/productrepo"
	"bakery/internal/adapters/out/postgres/userrepo"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
	"bakery/internal/testutil"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order aggregate persistence
// against a real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository

	baker     *user.User
	store     *pickup.Location
	croissant *product.Product
	cake      *product.Product
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, db, err := testutil.StartPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()

	err := suite.db.Exec(
		"TRUNCATE TABLE order_history, order_items, orders, customers, products, users, pickup_locations RESTART IDENTITY CASCADE",
	).Error
	suite.Require().NoError(err)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)

	u := user.New()
	u.SetEmail("baker@example.com")
	u.SetPasswordHash("bcrypt-hash")
	u.SetFirstName("Heidi")
	u.SetLastName("Carter")
	u.SetRole(user.RoleBaker)
	suite.baker, err = userrepo.NewGormUserRepository(suite.db).Save(ctx, u)
	suite.Require().NoError(err)

	l := pickup.New()
	l.SetName("Store")
	suite.store, err = locationrepo.NewGormLocationRepository(suite.db).Save(ctx, l)
	suite.Require().NoError(err)

	products := productrepo.NewGormProductRepository(suite.db)
	p := product.New()
	p.SetName("Croissant")
	p.SetPrice(350)
	suite.croissant, err = products.Save(ctx, p)
	suite.Require().NoError(err)

	p = product.New()
	p.SetName("Cake")
	p.SetPrice(2000)
	suite.cake, err = products.Save(ctx, p)
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// newOrder builds a valid unsaved order due on the given date.
func (suite *OrderRepositoryIntegrationTestSuite) newOrder(dueDate time.Time, customerName string) *order.Order {
	o := order.NewOrder(suite.baker)
	o.SetDueDate(dueDate)
	dueTime, err := kernel.NewTimeOfDay(16, 0)
	suite.Require().NoError(err)
	o.SetDueTime(dueTime)
	o.SetPickupLocation(suite.store)
	o.Customer().SetFullName(customerName)
	o.Customer().SetPhoneNumber("+46 555 123 456")

	item := order.NewItem()
	item.SetProduct(suite.croissant)
	item.SetQuantity(2)
	o.SetItems([]*order.OrderItem{item})
	return o
}

// saveOrder persists an order in the given state and returns the reloaded
// aggregate.
func (suite *OrderRepositoryIntegrationTestSuite) saveOrder(dueDate time.Time, customerName string, state order.State) *order.Order {
	ctx := context.Background()

	o := suite.newOrder(dueDate, customerName)
	o.ChangeState(suite.baker, state)
	saved, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)
	return saved
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_NewOrder_PersistsFullGraph() {
	ctx := context.Background()

	o := suite.newOrder(date(2026, time.April, 20), "Greta Svensson")
	saved, err := suite.repository.Save(ctx, o)
	suite.Require().NoError(err)

	suite.False(saved.IsNew())
	suite.Equal(int64(0), saved.Version())
	suite.Equal(order.New, saved.State())
	suite.Equal("2026-04-20", saved.DueDate().Format("2006-01-02"))
	suite.Equal("16:00", saved.DueTime().String())
	suite.Equal("Store", saved.PickupLocation().Name())

	suite.Equal("Greta Svensson", saved.Customer().FullName())
	suite.False(saved.Customer().IsNew())

	suite.Require().Len(saved.Items(), 1)
	suite.Equal("Croissant", saved.Items()[0].Product().Name())
	suite.Equal(700, saved.TotalPrice())

	suite.Require().Len(saved.History(), 1)
	suite.Equal("Order placed", saved.History()[0].Message())
	suite.Equal(order.New, saved.History()[0].NewState())
	suite.Equal("baker@example.com", saved.History()[0].CreatedBy().Email())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByID_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.FindByID(context.Background(), 12345)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_Update_BumpsVersionAndAppendsHistory() {
	ctx := context.Background()

	saved := suite.saveOrder(date(2026, time.April, 20), "Greta Svensson", order.New)

	saved.ChangeState(suite.baker, order.Confirmed)
	item := order.NewItem()
	item.SetProduct(suite.cake)
	item.SetQuantity(1)
	saved.SetItems(append(saved.Items(), item))

	updated, err := suite.repository.Save(ctx, saved)
	suite.Require().NoError(err)

	suite.Equal(saved.ID(), updated.ID())
	suite.Equal(int64(1), updated.Version())
	suite.Equal(order.Confirmed, updated.State())
	suite.Require().Len(updated.Items(), 2)
	suite.Equal(2700, updated.TotalPrice())

	suite.Require().Len(updated.History(), 2)
	suite.Equal("Order placed", updated.History()[0].Message())
	suite.Equal("Order Confirmed", updated.History()[1].Message())
	suite.Equal(order.Confirmed, updated.History()[1].NewState())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_StaleVersion_ReturnsConcurrentModificationError() {
	ctx := context.Background()

	saved := suite.saveOrder(date(2026, time.April, 20), "Greta Svensson", order.New)

	firstCopy, err := suite.repository.FindByID(ctx, saved.ID())
	suite.Require().NoError(err)
	secondCopy, err := suite.repository.FindByID(ctx, saved.ID())
	suite.Require().NoError(err)

	firstCopy.ChangeState(suite.baker, order.Confirmed)
	_, err = suite.repository.Save(ctx, firstCopy)
	suite.Require().NoError(err)

	secondCopy.ChangeState(suite.baker, order.Cancelled)
	_, err = suite.repository.Save(ctx, secondCopy)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConcurrentModification)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByCustomerName_MatchesCaseInsensitively() {
	ctx := context.Background()

	suite.saveOrder(date(2026, time.April, 20), "Greta Svensson", order.New)
	suite.saveOrder(date(2026, time.April, 21), "Malin Castro", order.New)

	orders, err := suite.repository.FindByCustomerName(ctx, "SVENS", ports.PageOf(0, 10))
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal("Greta Svensson", orders[0].Customer().FullName())

	count, err := suite.repository.CountByCustomerName(ctx, "svens")
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByDueDateAfter_IsExclusive() {
	ctx := context.Background()

	suite.saveOrder(date(2026, time.April, 20), "Greta Svensson", order.New)
	suite.saveOrder(date(2026, time.April, 25), "Malin Castro", order.New)

	orders, err := suite.repository.FindByDueDateAfter(ctx, date(2026, time.April, 20), ports.PageOf(0, 10))
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal("Malin Castro", orders[0].Customer().FullName())

	count, err := suite.repository.CountByDueDateAfter(ctx, date(2026, time.April, 19))
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	both, err := suite.repository.FindByCustomerNameAndDueDateAfter(
		ctx, "castro", date(2026, time.April, 20), ports.PageOf(0, 10))
	suite.Require().NoError(err)
	suite.Len(both, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindAll_OrdersByDueDate() {
	ctx := context.Background()

	suite.saveOrder(date(2026, time.April, 25), "Late Customer", order.New)
	suite.saveOrder(date(2026, time.April, 20), "Early Customer", order.New)

	orders, err := suite.repository.FindAll(ctx, ports.PageOf(0, 10))
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal("Early Customer", orders[0].Customer().FullName())
	suite.Equal("Late Customer", orders[1].Customer().FullName())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindSummaries_SkipsPastDueDatesAndHistory() {
	ctx := context.Background()

	suite.saveOrder(date(2026, time.April, 10), "Past Customer", order.Delivered)
	suite.saveOrder(date(2026, time.April, 20), "Current Customer", order.New)

	summaries, err := suite.repository.FindSummariesByDueDateOnOrAfter(ctx, date(2026, time.April, 20))
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)

	summary := summaries[0]
	suite.Equal("Current Customer", summary.Customer.FullName())
	suite.Equal(order.New, summary.State)
	suite.Equal("Store", summary.PickupLocation.Name())
	suite.Equal(700, summary.TotalPrice())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByDueDateAndState() {
	ctx := context.Background()
	today := date(2026, time.April, 20)

	suite.saveOrder(today, "A", order.New)
	suite.saveOrder(today, "B", order.Delivered)
	suite.saveOrder(today, "C", order.Ready)
	suite.saveOrder(date(2026, time.April, 21), "D", order.New)

	count, err := suite.repository.CountByDueDate(ctx, today)
	suite.Require().NoError(err)
	suite.Equal(int64(3), count)

	delivered, err := suite.repository.CountByDueDateAndStateIn(ctx, today, []order.State{order.Delivered})
	suite.Require().NoError(err)
	suite.Equal(int64(1), delivered)

	notAvailable, err := suite.repository.CountByDueDateAndStateIn(ctx, today,
		[]order.State{order.New, order.Confirmed, order.Problem})
	suite.Require().NoError(err)
	suite.Equal(int64(1), notAvailable)

	newOrders, err := suite.repository.CountByState(ctx, order.New)
	suite.Require().NoError(err)
	suite.Equal(int64(2), newOrders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestReportingQueries_CoverDeliveredOrdersOnly() {
	ctx := context.Background()

	suite.saveOrder(date(2026, time.April, 3), "A", order.Delivered)
	suite.saveOrder(date(2026, time.April, 3), "B", order.Delivered)
	suite.saveOrder(date(2026, time.April, 10), "C", order.Delivered)
	suite.saveOrder(date(2026, time.March, 5), "D", order.Delivered)
	suite.saveOrder(date(2026, time.April, 4), "E", order.New) // not delivered

	days, err := suite.repository.CountPerDay(ctx, date(2026, time.April, 1), date(2026, time.May, 1))
	suite.Require().NoError(err)
	suite.Require().Len(days, 2)
	suite.Equal("2026-04-03", days[0].Date.Format("2006-01-02"))
	suite.Equal(2, days[0].Count)
	suite.Equal(1, days[1].Count)

	months, err := suite.repository.CountPerMonth(ctx, date(2026, time.January, 1), date(2027, time.January, 1))
	suite.Require().NoError(err)
	suite.Require().Len(months, 2)
	suite.Equal(ports.MonthCount{Year: 2026, Month: 3, Count: 1}, months[0])
	suite.Equal(ports.MonthCount{Year: 2026, Month: 4, Count: 3}, months[1])

	sales, err := suite.repository.SumSalesPerMonth(ctx, date(2026, time.January, 1), date(2027, time.January, 1))
	suite.Require().NoError(err)
	suite.Require().Len(sales, 2)
	// every order carries two croissants at 350 cents
	suite.Equal(ports.MonthlySales{Year: 2026, Month: 3, Total: 700}, sales[0])
	suite.Equal(ports.MonthlySales{Year: 2026, Month: 4, Total: 2100}, sales[1])

	perProduct, err := suite.repository.CountPerProduct(ctx, 2026, 4)
	suite.Require().NoError(err)
	suite.Require().Len(perProduct, 1)
	suite.Equal(suite.croissant.ID(), perProduct[0].Product.ID())
	suite.Equal("Croissant", perProduct[0].Product.Name())
	suite.Equal(6, perProduct[0].Quantity, "only April deliveries are summed")

	perProduct, err = suite.repository.CountPerProduct(ctx, 2026, 3)
	suite.Require().NoError(err)
	suite.Require().Len(perProduct, 1)
	suite.Equal(2, perProduct[0].Quantity, "March sees only its own delivery")

	perProduct, err = suite.repository.CountPerProduct(ctx, 2026, 2)
	suite.Require().NoError(err)
	suite.Empty(perProduct)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
