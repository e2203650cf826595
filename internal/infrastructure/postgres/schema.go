package postgres

import (
	"context"
	"fmt"
)

// appSchema tablas propias de la API. El resto del esquema dvdrental es externo y no se migra.
var appSchema = []string{
	`CREATE TABLE IF NOT EXISTS app_user (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(150) NOT NULL UNIQUE,
		email         VARCHAR(254) NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		first_name    VARCHAR(150) NOT NULL DEFAULT '',
		last_name     VARCHAR(150) NOT NULL DEFAULT '',
		role          VARCHAR(20)  NOT NULL DEFAULT 'customer'
		              CHECK (role IN ('admin', 'staff', 'customer')),
		is_active     BOOLEAN      NOT NULL DEFAULT FALSE,
		date_joined   TIMESTAMPTZ  NOT NULL DEFAULT now(),
		last_login    TIMESTAMPTZ,
		updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS app_user_email_lower_idx ON app_user (lower(email))`,
}

// Migrate crea las tablas propias si no existen. Es idempotente.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range appSchema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
