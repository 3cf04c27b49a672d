package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/agung037/cv-processor/internal/domain/history"
)

type HistoryRepository struct {
	db *sql.DB
}

var _ domain.Repository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a history record and returns its id
func (r *HistoryRepository) Create(ctx context.Context, h *domain.Record) (int64, error) {
	const q = `
INSERT INTO cv_history
  (user_id, filename, original_filename, analysis_result, created_at)
VALUES (?,?,?,?,?)`
	result := h.AnalysisResult
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	res, err := r.db.ExecContext(ctx, q, h.UserID, h.StoredFilename, h.OriginalFilename, result, nowIfZero(h.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}
	return res.LastInsertId()
}

func (r *HistoryRepository) Get(ctx context.Context, userID, id int64) (*domain.Record, error) {
	const q = `
SELECT id, user_id, filename, original_filename, COALESCE(analysis_result,''), created_at
FROM cv_history
WHERE id=? AND user_id=? LIMIT 1`
	var h domain.Record
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&h.ID, &h.UserID, &h.StoredFilename, &h.OriginalFilename, &h.AnalysisResult, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning history: %w", err)
	}
	return &h, nil
}

// ListByUser returns a page without the analysis body, newest first
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Record, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := domain.Offset(page, pageSize)

	const q = `
SELECT id, user_id, filename, original_filename, created_at
FROM cv_history
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var h domain.Record
		if err := rows.Scan(&h.ID, &h.UserID, &h.StoredFilename, &h.OriginalFilename, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM cv_history WHERE user_id=?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Delete removes a record only when it belongs to userID
func (r *HistoryRepository) Delete(ctx context.Context, userID, id int64) error {
	const q = `DELETE FROM cv_history WHERE id=? AND user_id=?`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return affectedOrNotFound(res, domain.ErrNotFound)
}
