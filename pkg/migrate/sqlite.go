package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SQLiteSchema is the promotions table for local SQLite runs and repository
// tests. Array columns hold Postgres array literals as text.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS promotions (
	id TEXT PRIMARY KEY,
	merchant_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	kind TEXT NOT NULL,
	start_at DATETIME NOT NULL,
	end_at DATETIME NOT NULL,
	channels TEXT NOT NULL,
	scope_global BOOLEAN NOT NULL DEFAULT 0,
	scope_merchant_ids TEXT,
	scope_product_ids TEXT,
	scope_category_ids TEXT,
	scope_brand_ids TEXT,
	config TEXT NOT NULL,
	expose_to_creators BOOLEAN NOT NULL DEFAULT 0,
	allowed_creator_ids TEXT,
	human_readable_rule TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_promotions_merchant_end_at ON promotions (merchant_id, end_at);
`

// EnsureSQLiteSchema creates the promotions table when missing.
func EnsureSQLiteSchema(ctx context.Context, conn *gorm.DB) error {
	if err := conn.WithContext(ctx).Exec(SQLiteSchema).Error; err != nil {
		return fmt.Errorf("create sqlite schema: %w", err)
	}
	return nil
}
