// Package storage keeps uploaded files and resolves them to stable URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"hrportal/internal/config"
	"hrportal/pkg/apperror"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Upload keys are "<company id>_<random id>-<sanitized name>".
const companyPrefixLen = 36

// UploadCompany returns the company an upload key was stored for. uuid.Nil
// marks uploads made without a company scope.
func UploadCompany(key string) (uuid.UUID, bool) {
	if len(key) <= companyPrefixLen || key[companyPrefixLen] != '_' {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(key[:companyPrefixLen])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// LocalStorage writes uploads to a directory served under a public base URL.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(cfg *config.StorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: cfg.UploadDir, baseURL: strings.TrimRight(cfg.PublicBaseURL, "/")}, nil
}

// Save stores r for companyID under a fresh key derived from name and returns the key.
func (s *LocalStorage) Save(ctx context.Context, companyID uuid.UUID, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := unsafeChars.ReplaceAllString(filepath.Base(name), "_")
	if base == "" || base == "." || base == "_" {
		base = "upload"
	}
	key := companyID.String() + "_" + uuid.New().String() + "-" + base

	f, err := os.OpenFile(filepath.Join(s.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return key, nil
}

// Resolve maps an upload key to its public URL. Unknown keys and keys that
// try to escape the upload directory fail.
func (s *LocalStorage) Resolve(ctx context.Context, key string) (string, error) {
	if _, err := s.Path(ctx, key); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

// Path returns the file backing key on local disk.
func (s *LocalStorage) Path(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: invalid upload location", apperror.ErrValidation)
	}
	path := filepath.Join(s.dir, key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("upload %s: %w", key, apperror.ErrNotFound)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("upload %s: %w", key, apperror.ErrNotFound)
	}
	return path, nil
}

// BaseURL is the URL prefix files are served under.
func (s *LocalStorage) BaseURL() string { return s.baseURL }
