package postgres

import (
	"bakery/internal/adapters/out/postgres/locationrepo"
	"bakery/internal/adapters/out/postgres/orderrepo"
	"bakery/internal/adapters/out/postgres/productrepo"
	"bakery/internal/adapters/out/postgres/userrepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens a GORM connection to PostgreSQL. TranslateError is on
// so unique-constraint violations surface as gorm.ErrDuplicatedKey and can
// be mapped to domain conflicts.
func NewConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates or updates the schema for every persisted table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&productrepo.ProductDTO{},
		&userrepo.UserDTO{},
		&locationrepo.LocationDTO{},
		&orderrepo.CustomerDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
	)
}
