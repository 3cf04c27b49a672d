package middleware

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization utilities

const maxFilenameLen = 255

// ParseID validates a positive numeric path id
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// SanitizeFilename keeps only the base name of a client supplied file name,
// without control characters and at most 255 bytes (extension kept).
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = SanitizeString(filepath.Base(name))
	if name == "." || name == "/" {
		return ""
	}
	if len(name) <= maxFilenameLen {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) >= maxFilenameLen {
		ext = ""
	}
	stem := name[:maxFilenameLen-len(ext)]
	for !utf8.ValidString(stem) {
		stem = stem[:len(stem)-1]
	}
	return stem + ext
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// maxPage mirrors history.MaxPage
const maxPage = 1_000_000

// ValidatePage validates the page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
