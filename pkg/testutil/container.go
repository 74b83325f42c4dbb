// Package testutil provides testing utilities for the onboardd schema tools.
// It includes sqlmock helpers for unit tests and a testcontainers
// PostgreSQL server for integration tests.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nxzen/onboardd/pkg/config"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance
type PostgresContainer struct {
	*postgres.PostgresContainer
	cfg PostgresContainerConfig
}

// PostgresContainerConfig configures the test PostgreSQL container
type PostgresContainerConfig struct {
	Database string // database created by the image, used as the admin database
	Username string
	Password string
	Image    string // Optional: defaults to postgres:15-alpine
}

// DefaultPostgresConfig returns sensible defaults for test containers
func DefaultPostgresConfig() PostgresContainerConfig {
	return PostgresContainerConfig{
		Database: "postgres",
		Username: "test",
		Password: "test",
		Image:    "postgres:15-alpine",
	}
}

// NewPostgresContainer starts a PostgreSQL server for integration tests.
//
// Usage:
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    code := m.Run()
//	    container.Terminate(ctx)
//	    os.Exit(code)
//	}
func NewPostgresContainer(ctx context.Context, cfg PostgresContainerConfig) (*PostgresContainer, error) {
	defaults := DefaultPostgresConfig()
	if cfg.Image == "" {
		cfg.Image = defaults.Image
	}
	if cfg.Database == "" {
		cfg.Database = defaults.Database
	}
	if cfg.Username == "" {
		cfg.Username = defaults.Username
	}
	if cfg.Password == "" {
		cfg.Password = defaults.Password
	}

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(cfg.Image),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	return &PostgresContainer{
		PostgresContainer: container,
		cfg:               cfg,
	}, nil
}

// DatabaseConfig returns provisioner settings pointing at the container,
// targeting the given database name.
func (c *PostgresContainer) DatabaseConfig(ctx context.Context, target string) (*config.DatabaseConfig, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &config.DatabaseConfig{
		Host:           host,
		Port:           port.Int(),
		User:           c.cfg.Username,
		Password:       c.cfg.Password,
		Database:       target,
		AdminDatabase:  c.cfg.Database,
		SSLMode:        "disable",
		ConnectTimeout: 10 * time.Second,
	}, nil
}

// Terminate stops and removes the container
func (c *PostgresContainer) Terminate(ctx context.Context) error {
	return c.PostgresContainer.Terminate(ctx)
}
