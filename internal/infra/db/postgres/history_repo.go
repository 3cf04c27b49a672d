package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/agung037/cv-processor/internal/domain/history"
)

type HistoryRepository struct{ db *sql.DB }

var _ domain.Repository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Create(ctx context.Context, h *domain.Record) (int64, error) {
	const q = `
INSERT INTO cv_history (user_id, filename, original_filename, analysis_result, created_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	result := h.AnalysisResult
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	var id int64
	if err := r.db.QueryRowContext(ctx, q, h.UserID, h.StoredFilename, h.OriginalFilename, result, nowIfZero(h.CreatedAt)).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}
	return id, nil
}

func (r *HistoryRepository) Get(ctx context.Context, userID, id int64) (*domain.Record, error) {
	const q = `
SELECT id, user_id, filename, original_filename, COALESCE(analysis_result,''), created_at
FROM cv_history
WHERE id=$1 AND user_id=$2`
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

func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Record, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	const q = `
SELECT id, user_id, filename, original_filename, created_at
FROM cv_history
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, domain.Offset(page, pageSize))
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
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cv_history WHERE user_id=$1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cv_history WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return affectedOrNotFound(res, domain.ErrNotFound)
}
