package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Client wraps the schedule database handle.
type Client struct {
	db *sql.DB
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx"
	}
	return "sqlite3"
}

// Open connects to the schedule database. Postgres DSNs use the pgx stdlib
// driver; anything else is treated as a SQLite path (local deployments).
func Open(dsn string) (*Client, error) {
	db, err := sql.Open(driverFor(dsn), dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Client{db: db}, nil
}

// Ping verifies the connection with a bounded timeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.db.PingContext(ctx)
}

func (c *Client) Close() error {
	return c.db.Close()
}
