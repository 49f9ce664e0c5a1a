package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL is applied on startup. The unique indexes on imports.file_hash
// and transactions.fingerprint_hash are the final dedup authority; the
// application-level check-then-insert is only a fast path.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id              BIGSERIAL PRIMARY KEY,
		name            VARCHAR(100) NOT NULL UNIQUE,
		color           VARCHAR(7)   NOT NULL DEFAULT '#94a3b8',
		icon            VARCHAR(10)  NOT NULL DEFAULT '📌',
		is_default      BOOLEAN      NOT NULL DEFAULT FALSE,
		monthly_budget  BIGINT,
		tax_deductible  BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rules (
		id          BIGSERIAL PRIMARY KEY,
		pattern     VARCHAR(500) NOT NULL,
		match_type  VARCHAR(20)  NOT NULL DEFAULT 'contains',
		category_id BIGINT       NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		priority    INTEGER      NOT NULL DEFAULT 50,
		is_active   BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS imports (
		id             UUID PRIMARY KEY,
		filename       VARCHAR(255) NOT NULL,
		file_hash      VARCHAR(64)  NOT NULL UNIQUE,
		source_type    VARCHAR(50)  NOT NULL DEFAULT 'generic',
		column_mapping JSONB,
		account_label  VARCHAR(100),
		account_type   VARCHAR(20),
		notes          TEXT,
		created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id                 UUID PRIMARY KEY,
		import_id          UUID        NOT NULL REFERENCES imports(id) ON DELETE CASCADE,
		posted_date        VARCHAR(20) NOT NULL,
		description_raw    TEXT        NOT NULL,
		description_norm   TEXT        NOT NULL,
		amount_cents       BIGINT      NOT NULL,
		currency           VARCHAR(3)  NOT NULL DEFAULT 'USD',
		merchant           VARCHAR(255),
		merchant_canonical VARCHAR(255),
		category_id        BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		category_source    VARCHAR(20),
		category_rule_id   BIGINT REFERENCES rules(id) ON DELETE SET NULL,
		fingerprint_hash   VARCHAR(64) NOT NULL UNIQUE,
		transaction_type   VARCHAR(20) NOT NULL DEFAULT 'normal',
		note               TEXT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_import_id ON transactions(import_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_posted_date ON transactions(posted_date)`,
	`CREATE TABLE IF NOT EXISTS merchant_aliases (
		id        BIGSERIAL PRIMARY KEY,
		alias     VARCHAR(255) NOT NULL UNIQUE,
		canonical VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
