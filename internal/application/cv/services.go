package cv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agung037/cv-processor/internal/application"
	"github.com/agung037/cv-processor/internal/domain/ai"
	domain "github.com/agung037/cv-processor/internal/domain/cv"
	"github.com/agung037/cv-processor/internal/domain/history"
	"github.com/agung037/cv-processor/internal/logger"
)

// Outcome label untuk metric analisis
const (
	OutcomeGenerated = "generated"
	OutcomeFallback  = "fallback"
	OutcomeFailed    = "failed"
)

// Observer receives one call per finished pipeline run.
type Observer interface {
	ObserveAnalysis(outcome string, d time.Duration)
}

// Service menjalankan pipeline upload -> ekstraksi -> AI -> riwayat.
// Safe for concurrent use; each request has its own stored file name.
type Service struct {
	Store     domain.FileStore
	Extractor domain.Extractor
	Advisor   ai.Advisor
	History   history.Repository
	Archive   domain.Archive // optional
	Observer  Observer       // optional
	Clock     application.Clock
	Logger    *zap.Logger

	// RetainUploads keeps the stored file after the history row is written.
	RetainUploads bool
}

type AnalyzeCommand struct {
	UserID int64
	Upload domain.AnalysisRequest
}

type AnalyzeResult struct {
	Advice    domain.AnalysisResult
	HistoryID int64
}

// Analyze runs the full pipeline for one upload.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (res AnalyzeResult, err error) {
	clock := application.ClockOrSystem(s.Clock)
	log := logger.OrNop(s.Logger)
	start := clock.Now()

	up := cmd.Upload
	if up.Body == nil || up.Filename == "" {
		return res, domain.ErrNoFile
	}
	format, ok := domain.FormatOf(up.Filename)
	if !ok {
		return res, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	defer func() {
		outcome := OutcomeGenerated
		switch {
		case err != nil:
			outcome = OutcomeFailed
		case res.Advice.Fallback:
			outcome = OutcomeFallback
		}
		if s.Observer != nil {
			s.Observer.ObserveAnalysis(outcome, clock.Now().Sub(start))
		}
	}()

	storedName := uuid.NewString() + string(format)
	path, err := s.Store.Save(ctx, storedName, up.Body)
	if err != nil {
		log.Error("saving upload failed", zap.String("file", storedName), zap.Error(err))
		return res, fmt.Errorf("%w: %w", domain.ErrStorageFailed, err)
	}
	log.Info("upload stored",
		zap.Int64("user_id", cmd.UserID),
		zap.String("original", up.Filename),
		zap.String("stored", storedName),
	)
	if !s.RetainUploads {
		// runs after the history row is written, or on failure
		defer func() {
			if rerr := s.Store.Remove(context.WithoutCancel(ctx), storedName); rerr != nil {
				log.Warn("removing upload failed", zap.String("file", storedName), zap.Error(rerr))
			}
		}()
	}

	if s.Archive != nil {
		if url, aerr := s.Archive.Upload(ctx, path, storedName); aerr != nil {
			log.Warn("archiving upload failed", zap.String("file", storedName), zap.Error(aerr))
		} else {
			log.Debug("upload archived", zap.String("url", url))
		}
	}

	text, err := s.Extractor.Extract(ctx, path, format)
	if err != nil {
		return res, err
	}

	advice := s.Advisor.GenerateAdvice(ctx, text)
	if advice.Fallback {
		log.Warn("advice fallback used", zap.String("stored", storedName))
	}

	payload, err := json.Marshal(advice)
	if err != nil {
		return res, fmt.Errorf("encode analysis: %w", err)
	}
	id, err := s.History.Create(ctx, &history.Record{
		UserID:           cmd.UserID,
		StoredFilename:   storedName,
		OriginalFilename: up.Filename,
		AnalysisResult:   string(payload),
		CreatedAt:        clock.Now(),
	})
	if err != nil {
		return res, fmt.Errorf("save history: %w", err)
	}

	return AnalyzeResult{Advice: advice, HistoryID: id}, nil
}

// IsClientError reports errors caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrNoFile) || errors.Is(err, domain.ErrUnsupportedFormat)
}
