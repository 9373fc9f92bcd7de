package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas si no existen. ON UPDATE CASCADE implementa el renombrado
// en sitio de productos y ubicaciones; ON DELETE RESTRICT impide borrar algo referenciado.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		product_id VARCHAR(50) PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		location_id VARCHAR(50) PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS product_movements (
		movement_id   BIGSERIAL PRIMARY KEY,
		timestamp     TIMESTAMPTZ NOT NULL DEFAULT now(),
		from_location VARCHAR(50) NULL REFERENCES locations (location_id) ON UPDATE CASCADE ON DELETE RESTRICT,
		to_location   VARCHAR(50) NULL REFERENCES locations (location_id) ON UPDATE CASCADE ON DELETE RESTRICT,
		product_id    VARCHAR(50) NOT NULL REFERENCES products (product_id) ON UPDATE CASCADE ON DELETE RESTRICT,
		qty           INTEGER NOT NULL CHECK (qty > 0),
		CONSTRAINT product_movements_location_present CHECK (from_location IS NOT NULL OR to_location IS NOT NULL)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movements_product ON product_movements (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movements_from ON product_movements (from_location)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movements_to ON product_movements (to_location)`,
	`CREATE INDEX IF NOT EXISTS idx_product_movements_timestamp ON product_movements (timestamp, movement_id)`,
}

// EnsureSchema crea el esquema de forma idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Truncate vacía las tres tablas y reinicia la secuencia de movement_id (RunFresh y tests de integración).
func Truncate(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, `TRUNCATE product_movements, products, locations RESTART IDENTITY`)
	if err != nil {
		return storageErr("truncate", err)
	}
	return nil
}
