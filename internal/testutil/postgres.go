// Package testutil hosts shared helpers for integration tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pgadapter "bakery/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	// database/sql driver for the readiness ping
	_ "github.com/lib/pq"
)

// StartPostgres starts a disposable PostgreSQL container, waits until it
// accepts connections, opens a GORM connection and migrates the schema.
// The caller owns the container and must Terminate it.
func StartPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, fmt.Errorf("container connection string: %w", err)
	}

	// plain driver-level ping before handing the DSN to GORM
	if err := ping(ctx, connStr); err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open gorm connection: %w", err)
	}

	if err := pgadapter.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate schema: %w", err)
	}
	return container, db, nil
}

func ping(ctx context.Context, connStr string) error {
	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
