package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

const pingTimeout = 5 * time.Second

// Client represents a Postgres client.
type Client struct {
	pool       *pgxpool.Pool
	connectErr error
}

// Pool returns the underlying connection pool.
func (p *Client) Pool() (*pgxpool.Pool, error) {
	if p.pool == nil {
		return nil, fmt.Errorf("%w: %v", order.ErrStoreUnavailable, p.connectErr)
	}

	return p.pool, nil
}

// Ping checks that the server is reachable.
func (p *Client) Ping(ctx context.Context) error {
	pool, err := p.Pool()
	if err != nil {
		return err
	}

	return pool.Ping(ctx)
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// NewClient creates a Postgres client from postgres.dsn.
// Connection failures are logged and do not stop startup.
func NewClient(ctx context.Context) *Client {
	return NewClientWithDSN(ctx, viper.GetString("postgres.dsn"))
}

// NewClientWithDSN creates a Postgres client for the given connection string.
func NewClientWithDSN(ctx context.Context, dsn string) *Client {
	c := &Client{}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		slog.Error("Postgres config error", "error", err)
		c.connectErr = err

		return c
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		slog.Error("Postgres connection error", "error", err)
		c.connectErr = err

		return c
	}
	c.pool = pool

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		slog.Error("Postgres connection error", "error", err)
	} else {
		slog.Info("Connected to Postgres")
	}

	return c
}

// Migrate applies the embedded goose migrations. Applied versions are skipped.
func (p *Client) Migrate(ctx context.Context) error {
	pool, err := p.Pool()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return goose.UpContext(ctx, db, ".")
}
