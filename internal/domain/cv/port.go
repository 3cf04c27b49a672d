package cv

import (
	"context"
	"io"
)

// Extractor port (ekstraksi teks dari file yang sudah disimpan)
type Extractor interface {
	Extract(ctx context.Context, filePath string, format Format) (string, error)
}

// FileStore port untuk upload directory
type FileStore interface {
	// Save streams body into the store under name and returns the local path.
	// A partially written file is removed before an error is returned.
	Save(ctx context.Context, name string, body io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}

// Archive port (mirror file upload ke object storage)
type Archive interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
