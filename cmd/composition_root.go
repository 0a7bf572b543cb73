package cmd

import (
	"fmt"
	"log/slog"
	"os"

	adapterhttp "bakery/internal/adapters/in/http"
	"bakery/internal/adapters/out/postgres"
	"bakery/internal/core/application/services"
	"bakery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters and application services together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	products  *services.ProductService
	users     *services.UserService
	locations *services.PickupLocationService
	orders    *services.OrderService
	dashboard *services.DashboardService
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	products, err := services.NewProductService(uowFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}
	users, err := services.NewUserService(uowFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	locations, err := services.NewPickupLocationService(uowFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to create pickup location service: %w", err)
	}
	orders, err := services.NewOrderService(uowFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}
	dashboard, err := services.NewDashboardService(uowFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		products:   products,
		users:      users,
		locations:  locations,
		orders:     orders,
		dashboard:  dashboard,
	}, nil
}

// CreateServer builds the HTTP server over the application services.
func (c *CompositionRoot) CreateServer() *adapterhttp.Server {
	return adapterhttp.NewServer(c.products, c.users, c.locations, c.orders, c.dashboard)
}

// CreateJobManager builds the manager for the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orders, c.dashboard, c.logger)
}
