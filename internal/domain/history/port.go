package history

import (
	"context"
	"errors"
)

// ErrNotFound is also returned for records owned by another user.
var ErrNotFound = errors.New("history record not found")

// Repository port for persisting and querying analyses.
// Every read and delete is scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, r *Record) (int64, error)
	Get(ctx context.Context, userID, id int64) (*Record, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*Record, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
}
