package ai

import (
	"context"

	"github.com/agung037/cv-processor/internal/domain/cv"
)

// Advisor turns extracted CV text into an advice report.
// Implementations are total: failures come back as a fallback result.
type Advisor interface {
	GenerateAdvice(ctx context.Context, cvText string) cv.AnalysisResult
}
