// Package pgtest starts a disposable PostgreSQL container with the production schema
// applied. It is imported by integration tests only.
package pgtest

import (
	"context"
	"time"

	"cafe/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container plus a gorm connection to it.
type Database struct {
	Container *postgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies all migrations.
func Start(ctx context.Context) (*Database, error) {
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
		return nil, err
	}

	database := &Database{Container: container}

	database.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = database.Terminate(ctx)
		return nil, err
	}

	if err := migrations.Up(database.DSN); err != nil {
		_ = database.Terminate(ctx)
		return nil, err
	}

	database.DB, err = gorm.Open(postgresdriver.Open(database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = database.Terminate(ctx)
		return nil, err
	}

	return database, nil
}

// Reset empties every table and restarts the order number sequence at 1.
func (d *Database) Reset() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE outbox, line_items, orders, menu_items, users").Error; err != nil {
			return err
		}
		return tx.Exec("ALTER SEQUENCE orders_id_seq RESTART WITH 1").Error
	})
}

// SeedUser inserts a login with role "Customer", "Employee" or "Manager".
func (d *Database) SeedUser(login, role string) error {
	return d.DB.Exec("INSERT INTO users (login, role) VALUES (?, ?)", login, role).Error
}

// SeedMenuItem inserts a menu item priced at price, a decimal literal such as "3.50".
func (d *Database) SeedMenuItem(name, price string) error {
	return d.DB.Exec("INSERT INTO menu_items (name, price) VALUES (?, ?::numeric)", name, price).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
