package users

import "context"

// Repository port untuk tabel users
type Repository interface {
	Create(ctx context.Context, u *User) (int64, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	ListExcept(ctx context.Context, excludeID int64) ([]*User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
