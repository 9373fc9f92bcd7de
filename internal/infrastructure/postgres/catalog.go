package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster/internal/domain"
)

// referenceTable SQL común de las tablas de referencia (products, locations): una sola
// columna de identificador.
type referenceTable struct {
	kind   string // para mensajes de error
	table  string
	column string
}

var (
	productsTable  = referenceTable{kind: "producto", table: "products", column: "product_id"}
	locationsTable = referenceTable{kind: "ubicación", table: "locations", column: "location_id"}
)

func (t referenceTable) insert(ctx context.Context, q Querier, id string) error {
	_, err := q.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1)`, t.table, t.column), id)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s %q", domain.ErrConflict, t.kind, id)
	case isInputViolation(err):
		return fmt.Errorf("%w: %s %q", domain.ErrValidation, t.kind, id)
	}
	return storageErr("insert "+t.table, err)
}

func (t referenceTable) exists(ctx context.Context, q Querier, id string) (bool, error) {
	var found string
	err := q.QueryRow(ctx, fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE %[2]s = $1`, t.table, t.column), id).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, storageErr("get "+t.table, err)
	}
	return true, nil
}

// rename actualiza la PK; las FK con ON UPDATE CASCADE arrastran los movimientos.
func (t referenceTable) rename(ctx context.Context, q Querier, oldID, newID string) error {
	cmd, err := q.Exec(ctx, fmt.Sprintf(`UPDATE %[1]s SET %[2]s = $2 WHERE %[2]s = $1`, t.table, t.column), oldID, newID)
	switch {
	case err == nil:
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s %q", domain.ErrConflict, t.kind, newID)
	case isInputViolation(err):
		return fmt.Errorf("%w: %s %q", domain.ErrValidation, t.kind, newID)
	default:
		return storageErr("rename "+t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, t.kind, oldID)
	}
	return nil
}

func (t referenceTable) list(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(`SELECT %[2]s FROM %[1]s ORDER BY %[2]s`, t.table, t.column))
	if err != nil {
		return nil, storageErr("list "+t.table, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storageErr("scan "+t.table, err)
	}
	return ids, nil
}

func (t referenceTable) count(ctx context.Context, q Querier) (int, error) {
	var n int
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, t.table)).Scan(&n); err != nil {
		return 0, storageErr("count "+t.table, err)
	}
	return n, nil
}

// remove borra la fila; ON DELETE RESTRICT rechaza si hay movimientos que la referencian.
func (t referenceTable) remove(ctx context.Context, q Querier, id string) error {
	cmd, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.table, t.column), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s %q", domain.ErrReferentialIntegrity, t.kind, id)
		}
		return storageErr("delete "+t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, t.kind, id)
	}
	return nil
}
