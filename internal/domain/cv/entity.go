package cv

import (
	"io"
	"path/filepath"
	"strings"
)

// Format enum untuk dokumen yang didukung
type Format string

const (
	FormatPDF  Format = ".pdf"
	FormatDOCX Format = ".docx"
)

// SupportedFormats allow-list untuk upload dan ekstraksi
var SupportedFormats = []Format{FormatPDF, FormatDOCX}

// ParseFormat normalizes an extension (with or without the leading dot)
// and reports whether it is on the allow-list.
func ParseFormat(ext string) (Format, bool) {
	e := strings.ToLower(strings.TrimSpace(ext))
	if e != "" && !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	for _, f := range SupportedFormats {
		if Format(e) == f {
			return f, true
		}
	}
	return Format(e), false
}

// FormatOf returns the format of a file name based on its extension.
func FormatOf(filename string) (Format, bool) {
	return ParseFormat(filepath.Ext(filename))
}

// AnalysisRequest is the per-request upload handed to the pipeline.
type AnalysisRequest struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// AnalysisResult is the persisted artifact of one pipeline run.
type AnalysisResult struct {
	Markdown string `json:"markdown"`

	// Fallback is true when the markdown is the canned apology document.
	// Never serialized: clients and history see the same shape either way.
	Fallback bool `json:"-"`
}
