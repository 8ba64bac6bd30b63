package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type UnitRepository struct {
	pool *pgxpool.Pool
}

func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

func (r *UnitRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const unitColumns = `id, title, price_cents, status, category, condition, specs, image_url, created_at, updated_at`

func scanUnit(row pgx.Row) (domain.Unit, error) {
	var u domain.Unit
	err := row.Scan(
		&u.ID,
		&u.Title,
		&u.PriceCents,
		&u.Status,
		&u.Category,
		&u.Condition,
		&u.Specs,
		&u.ImageURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// GetUnits loads the requested units. Every id must exist; a shorter result
// set means at least one id is unknown and the whole read fails.
func (r *UnitRepository) GetUnits(ctx context.Context, ids []string) ([]domain.Unit, error) {
	return r.getUnits(ctx, ids, false)
}

// GetUnitsForUpdate is GetUnits with row locks, ordered by id so concurrent
// placements acquire locks in the same order.
func (r *UnitRepository) GetUnitsForUpdate(ctx context.Context, ids []string) ([]domain.Unit, error) {
	return r.getUnits(ctx, ids, true)
}

func (r *UnitRepository) getUnits(ctx context.Context, ids []string, forUpdate bool) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = ANY($1) ORDER BY id`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := db(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, &domain.StorageError{Op: "get units", Err: err}
	}
	defer rows.Close()

	units := make([]domain.Unit, 0, len(ids))
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "scan unit", Err: err}
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, &domain.StorageError{Op: "get units", Err: err}
	}
	if len(units) != len(ids) {
		return nil, domain.ErrUnitNotFound
	}
	return units, nil
}

// TransitionUnits is the single sanctioned status mutation: one conditional
// update that only touches units currently in an allowed source status, and
// reports exactly which units it changed.
func (r *UnitRepository) TransitionUnits(ctx context.Context, ids []string, from []domain.UnitStatus, to domain.UnitStatus) ([]string, error) {
	const stmt = `
UPDATE units
SET status = $3, updated_at = NOW()
WHERE id = ANY($1) AND status = ANY($2)
RETURNING id`

	fromRaw := make([]string, len(from))
	for i, s := range from {
		fromRaw[i] = string(s)
	}

	rows, err := db(ctx, r.pool).Query(ctx, stmt, ids, fromRaw, string(to))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, &domain.StorageError{Op: "transition units", Err: err}
	}
	defer rows.Close()

	var moved []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &domain.StorageError{Op: "transition units", Err: err}
		}
		moved = append(moved, id)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, &domain.StorageError{Op: "transition units", Err: err}
	}
	return moved, nil
}

func (r *UnitRepository) GetUnit(ctx context.Context, id string) (domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`
	u, err := scanUnit(db(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Unit{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Unit{}, domain.ErrUnitNotFound
		}
		return domain.Unit{}, &domain.StorageError{Op: "get unit", Err: err}
	}
	return u, nil
}

func (r *UnitRepository) ListUnits(ctx context.Context, filter domain.UnitFilter) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE ($1 = '' OR status = $1) AND ($2 = '' OR category = $2) ORDER BY created_at DESC`

	rows, err := db(ctx, r.pool).Query(ctx, query, string(filter.Status), filter.Category)
	if err != nil {
		return nil, &domain.StorageError{Op: "list units", Err: err}
	}
	defer rows.Close()

	var units []domain.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "scan unit", Err: err}
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list units", Err: err}
	}
	return units, nil
}

func (r *UnitRepository) CreateUnit(ctx context.Context, unit domain.Unit) error {
	const stmt = `
INSERT INTO units (id, title, price_cents, status, category, condition, specs, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := db(ctx, r.pool).Exec(ctx, stmt,
		unit.ID,
		unit.Title,
		unit.PriceCents,
		unit.Status,
		unit.Category,
		unit.Condition,
		unit.Specs,
		unit.ImageURL,
		unit.CreatedAt,
		unit.UpdatedAt,
	)
	if err != nil {
		return &domain.StorageError{Op: "create unit", Err: err}
	}
	return nil
}

func (r *UnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	const stmt = `
UPDATE units
SET title = $2, price_cents = $3, category = $4, condition = $5, specs = $6, image_url = $7, updated_at = $8
WHERE id = $1`

	tag, err := db(ctx, r.pool).Exec(ctx, stmt,
		unit.ID,
		unit.Title,
		unit.PriceCents,
		unit.Category,
		unit.Condition,
		unit.Specs,
		unit.ImageURL,
		unit.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return &domain.StorageError{Op: "update unit", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnitNotFound
	}
	return nil
}
