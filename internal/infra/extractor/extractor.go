package extractor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agung037/cv-processor/internal/domain/cv"
)

// Extractor reads plain text out of stored CV files.
type Extractor struct {
	logger *zap.Logger
}

var _ cv.Extractor = (*Extractor)(nil)

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract returns the raw text of the file at path. The text is not trimmed
// or truncated here.
func (e *Extractor) Extract(_ context.Context, path string, format cv.Format) (string, error) {
	f, ok := cv.ParseFormat(string(format))
	if !ok {
		return "", fmt.Errorf("%w: %s (only DOCX and PDF are supported)", cv.ErrUnsupportedFormat, format)
	}

	var (
		text string
		err  error
	)
	switch f {
	case cv.FormatPDF:
		text, err = extractPDF(path)
	case cv.FormatDOCX:
		text, err = extractDOCX(path)
	}
	if err != nil {
		e.logger.Error("text extraction failed",
			zap.String("path", path),
			zap.String("format", string(f)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", cv.ErrExtractionFailed, err)
	}
	return text, nil
}
