package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) GetAdminByLogin(ctx context.Context, login string) (domain.Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE login = $1`

	var a domain.Admin
	err := r.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Admin{}, domain.ErrAdminNotFound
		}
		return domain.Admin{}, &domain.StorageError{Op: "get admin", Err: err}
	}
	return a, nil
}

// UpsertAdmin creates the account or refreshes its password hash. Used for
// the startup bootstrap admin.
func (r *AdminRepository) UpsertAdmin(ctx context.Context, admin domain.Admin) error {
	const stmt = `
INSERT INTO admins (id, login, password_hash, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (login) DO UPDATE SET password_hash = EXCLUDED.password_hash`

	_, err := r.pool.Exec(ctx, stmt, admin.ID, admin.Login, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		return &domain.StorageError{Op: "upsert admin", Err: err}
	}
	return nil
}
