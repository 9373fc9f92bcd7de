package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `movement_id, timestamp, product_id, from_location, to_location, qty`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// writeErr traduce errores de escritura: FK o CHECK violados son entrada inválida.
func writeErr(op string, m *entity.Movement, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: producto o ubicación inexistente en el movimiento %d", domain.ErrValidation, m.MovementID)
	case isInputViolation(err):
		return fmt.Errorf("%w: movimiento rechazado por la base de datos", domain.ErrValidation)
	}
	return storageErr(op, err)
}

// Create persiste un movimiento; movement_id y, si falta, el timestamp los asigna la base.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	var ts *time.Time
	if !movement.Timestamp.IsZero() {
		ts = &movement.Timestamp
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO product_movements (timestamp, product_id, from_location, to_location, qty)
		VALUES (COALESCE($1, now()), $2, $3, $4, $5)
		RETURNING movement_id, timestamp`,
		ts, movement.ProductID, nullable(movement.FromLocation), nullable(movement.ToLocation), movement.Qty,
	).Scan(&movement.MovementID, &movement.Timestamp)
	if err != nil {
		return writeErr("insert movement", movement, err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	row := r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM product_movements WHERE movement_id = $1`, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get movement", err)
	}
	return m, nil
}

func (r *MovementRepo) Update(ctx context.Context, movement *entity.Movement) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE product_movements
		SET timestamp = $2, product_id = $3, from_location = $4, to_location = $5, qty = $6
		WHERE movement_id = $1`,
		movement.MovementID, movement.Timestamp, movement.ProductID,
		nullable(movement.FromLocation), nullable(movement.ToLocation), movement.Qty,
	)
	if err != nil {
		return writeErr("update movement", movement, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, movement.MovementID)
	}
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_movements WHERE movement_id = $1`, id)
	if err != nil {
		return storageErr("delete movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, id)
	}
	return nil
}

// List lista todo el libro. El desempate por movement_id va en la misma dirección.
func (r *MovementRepo) List(ctx context.Context, opts repository.MovementListOptions) ([]*entity.Movement, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dir := "ASC"
	if opts.Descending {
		dir = "DESC"
	}
	order := fmt.Sprintf("movement_id %s", dir)
	if opts.OrderBy == repository.OrderByTimestamp {
		order = fmt.Sprintf("timestamp %[1]s, movement_id %[1]s", dir)
	}
	query := `SELECT ` + movementColumns + ` FROM product_movements ORDER BY ` + order
	var args []any
	if opts.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, opts.Limit)
	}
	return r.queryMovements(ctx, "list movements", query, args...)
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.queryMovements(ctx, "list by product",
		`SELECT `+movementColumns+` FROM product_movements WHERE product_id = $1 ORDER BY movement_id`, productID)
}

func (r *MovementRepo) ListByLocation(ctx context.Context, locationID, role string) ([]*entity.Movement, error) {
	if err := repository.ValidateRole(role); err != nil {
		return nil, err
	}
	var where string
	switch role {
	case repository.RoleSource:
		where = `from_location = $1`
	case repository.RoleDestination:
		where = `to_location = $1`
	default:
		where = `(from_location = $1 OR to_location = $1)`
	}
	return r.queryMovements(ctx, "list by location",
		`SELECT `+movementColumns+` FROM product_movements WHERE `+where+` ORDER BY movement_id`, locationID)
}

func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM product_movements`).Scan(&n); err != nil {
		return 0, storageErr("count movements", err)
	}
	return n, nil
}

func (r *MovementRepo) ExistsByProduct(ctx context.Context, productID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM product_movements WHERE product_id = $1)`, productID)
}

func (r *MovementRepo) ExistsByLocation(ctx context.Context, locationID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM product_movements WHERE from_location = $1 OR to_location = $1)`, locationID)
}

func (r *MovementRepo) exists(ctx context.Context, query, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, storageErr("exists movement", err)
	}
	return ok, nil
}

func (r *MovementRepo) queryMovements(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m        entity.Movement
		from, to *string
	)
	if err := row.Scan(&m.MovementID, &m.Timestamp, &m.ProductID, &from, &to, &m.Qty); err != nil {
		return nil, err
	}
	if from != nil {
		m.FromLocation = *from
	}
	if to != nil {
		m.ToLocation = *to
	}
	return &m, nil
}
