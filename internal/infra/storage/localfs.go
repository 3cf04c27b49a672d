package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agung037/cv-processor/internal/domain/cv"
)

// UploadDir simpan file upload di direktori lokal
type UploadDir struct {
	basePath string
}

var _ cv.FileStore = (*UploadDir)(nil)

func NewUploadDir(basePath string) (*UploadDir, error) {
	if basePath == "" {
		basePath = "./uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadDir{basePath: basePath}, nil
}

func (d *UploadDir) Path(name string) string {
	return filepath.Join(d.basePath, name)
}

// Save copies body into the upload directory. The name must be a bare file
// name; a failed copy removes what was written.
func (d *UploadDir) Save(ctx context.Context, name string, body io.Reader) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	path := d.Path(name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, readerWithContext(ctx, body)); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}
	return path, nil
}

func (d *UploadDir) Remove(_ context.Context, name string) error {
	if err := os.Remove(d.Path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
