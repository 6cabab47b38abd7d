// Package blob stores uploaded listing images and KYC artifacts on local
// disk. Files are served read-only under the public base URL.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/pkg/crypto"
	"motorhub.backend/pkg/logger"
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var copyBlob = io.Copy

// LocalStore implements repositories.BlobStore on a directory
type LocalStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewLocalStore creates the directory if needed
func NewLocalStore(dir, baseURL string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxBytes: maxBytes}, nil
}

// Dir is the directory blobs are written to
func (s *LocalStore) Dir() string {
	return s.dir
}

// Upload stores an image and returns its public URL. The declared content
// type is ignored; the type is sniffed from the first bytes.
func (s *LocalStore) Upload(ctx context.Context, filename, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", domainerrors.Invalid("file", "empty upload")
	}
	if int64(len(data)) > s.maxBytes {
		return "", domainerrors.Invalid("file", fmt.Sprintf("exceeds %d bytes", s.maxBytes))
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", domainerrors.Invalid("file", "unsupported content type "+contentType)
	}

	token, err := crypto.GenerateRandomToken(16)
	if err != nil {
		return "", err
	}
	name := token + ext

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", domainerrors.StoreUnavailable(err)
	}
	if _, err := copyBlob(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", domainerrors.StoreUnavailable(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", domainerrors.StoreUnavailable(err)
	}

	logger.Debug(ctx, "Blob stored",
		zap.String("original", filepath.Base(filename)),
		zap.String("name", name),
		zap.String("contentType", contentType),
		zap.Int("size", len(data)),
	)
	return s.baseURL + "/" + name, nil
}
