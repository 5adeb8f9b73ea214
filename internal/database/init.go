package database

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/f1sync/internal/config"
)

// Initialize creates a database connection pool and verifies the schema
// has been applied
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	// Verify the schema is present by probing for the seasons table
	var exists bool
	err = db.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'seasons')",
	).Scan(&exists)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to probe schema: %w", err)
	}

	if !exists {
		fmt.Println("Warning: schema not applied. Run the migration in migrations/schema.sql.")
	}

	return db, nil
}

// ApplySchema executes the DDL at schemaPath against the store. The
// schema uses IF NOT EXISTS throughout, so re-applying is safe.
func ApplySchema(ctx context.Context, db *DB, schemaPath string) error {
	ddl, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := db.pool.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
