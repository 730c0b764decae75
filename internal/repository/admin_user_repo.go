package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KataCreate/report-sys/internal/model"
)

type AdminUserRepo struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepo(pool *pgxpool.Pool) *AdminUserRepo {
	return &AdminUserRepo{pool: pool}
}

// Create inserts an admin mirror row. An empty role defaults to "admin".
func (r *AdminUserRepo) Create(ctx context.Context, email, role string) (*model.AdminUser, error) {
	if role == "" {
		role = "admin"
	}

	query := `
		INSERT INTO admin_users (email, role)
		VALUES ($1, $2)
		RETURNING id, email, role, created_at, updated_at`

	var u model.AdminUser
	err := r.pool.QueryRow(ctx, query, email, role).Scan(
		&u.ID, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, wrap("create admin user", err)
	}
	return &u, nil
}

// List returns all admin users, newest first.
func (r *AdminUserRepo) List(ctx context.Context) ([]model.AdminUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, role, created_at, updated_at
		FROM admin_users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrap("list admin users", err)
	}
	defer rows.Close()

	var users []model.AdminUser
	for rows.Next() {
		var u model.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, wrap("scan admin user", err)
		}
		users = append(users, u)
	}
	return users, wrap("list admin users", rows.Err())
}

// Delete removes an admin user row.
func (r *AdminUserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return wrap("delete admin user", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("delete admin user", pgx.ErrNoRows)
	}
	return nil
}
