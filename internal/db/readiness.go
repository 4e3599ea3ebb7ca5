package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Ping reports whether the underlying connection pool can reach the database.
func Ping(ctx context.Context, sqlDB *sql.DB) error {
	if sqlDB == nil {
		return fmt.Errorf("ping database: no connection pool")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
