package history

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/agung037/cv-processor/internal/domain/cv"
	domain "github.com/agung037/cv-processor/internal/domain/history"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Renderer turns an advice markdown document into an HTML page.
type Renderer interface {
	Page(title, markdown string) (string, error)
}

type Service struct {
	Repo     domain.Repository
	Renderer Renderer
}

// Detail satu riwayat beserta hasil analisis yang sudah di-decode
type Detail struct {
	Item     *domain.Record
	Analysis cv.AnalysisResult
	Report   cv.Report
}

// List returns one page of the user's history, newest first, without bodies.
func (s *Service) List(ctx context.Context, userID int64, page, pageSize int) (*domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if page > domain.MaxPage {
		page = domain.MaxPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total, err := s.Repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Record{}
	}
	for _, it := range items {
		it.AnalysisResult = ""
	}
	return &domain.PaginatedResult{
		Data:       items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Detail, error) {
	rec, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	analysis := DecodeAnalysis(rec.AnalysisResult)
	return &Detail{Item: rec, Analysis: analysis, Report: cv.ParseReport(analysis.Markdown)}, nil
}

// RenderHTML renders the stored advice of one record as a standalone page.
func (s *Service) RenderHTML(ctx context.Context, userID, id int64) (string, error) {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return s.Renderer.Page(d.Item.OriginalFilename, d.Analysis.Markdown)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.Repo.Delete(ctx, userID, id)
}

// DecodeAnalysis reads a persisted analysis. Rows that are not the JSON
// object shape are treated as raw markdown.
func DecodeAnalysis(raw string) cv.AnalysisResult {
	var res cv.AnalysisResult
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal([]byte(trimmed), &res) == nil {
		return res
	}
	return cv.AnalysisResult{Markdown: raw}
}
