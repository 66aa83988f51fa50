package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentencias DDL idempotentes. Las FKs son ON DELETE RESTRICT: el almacén es
// la garantía final de que nada referenciado por un movimiento desaparece.
// El CHECK de quantity_in_stock respalda el invariante de stock no negativo.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role_title    TEXT NOT NULL DEFAULT '',
		access_level  TEXT NOT NULL CHECK (access_level IN ('admin', 'tecnico')),
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id                UUID PRIMARY KEY,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		quantity_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (quantity_in_stock >= 0),
		registered_at     TIMESTAMPTZ NOT NULL,
		status            TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive'))
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		contact    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id           UUID PRIMARY KEY,
		equipment_id UUID NOT NULL REFERENCES equipment(id) ON DELETE RESTRICT,
		user_id      UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		client_id    UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		checkout_at  TIMESTAMPTZ NOT NULL,
		quantity     INTEGER NOT NULL CHECK (quantity >= 1),
		returned_at  TIMESTAMPTZ,
		note         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_open
		ON movements (equipment_id) WHERE returned_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_movements_client
		ON movements (client_id, checkout_at DESC)`,
}

// EnsureSchema crea las cuatro tablas e índices si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
