package repositories

import (
	"context"
	"database/sql"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM admins WHERE username=? LIMIT 1`, strings.TrimSpace(username)).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt,
	)
	return a, err
}

func (r AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

func (r AdminRepository) Create(ctx context.Context, a models.Admin) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO admins (username, password_hash, role) VALUES (?,?,?)`,
		a.Username, a.PasswordHash, a.Role)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "admin", Msg: "username already taken", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}
