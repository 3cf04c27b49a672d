package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/agung037/cv-processor/internal/domain/users"
)

type UserRepository struct{ db *sql.DB }

var _ domain.Repository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository { return &UserRepository{db: db} }

const userColumns = `id, username, email, password_hash, role, is_active, created_at`

// Create insert user, id dari RETURNING
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	const q = `
INSERT INTO users (username, email, password_hash, role, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id`
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	var id int64
	err := r.db.QueryRowContext(ctx, q, u.Username, u.Email, u.PasswordHash, role, u.IsActive, nowIfZero(u.CreatedAt)).Scan(&id)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return scanUser(r.db.QueryRowContext(ctx, q, username))
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1 OR email=$2)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, username, email).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return ok, nil
}

func (r *UserRepository) ListExcept(ctx context.Context, excludeID int64) ([]*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id<>$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, excludeID)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return affectedOrNotFound(res, domain.ErrNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return affectedOrNotFound(res, domain.ErrNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}
