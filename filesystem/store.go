// Package filesystem serves read-only static files from a directory.
// Lookups are sandboxed by os.Root, entity tags are SHA256 based and content
// types are detected from file extensions.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/sagarc03/apitour"
)

// Store provides read access to files under a root directory.
type Store struct {
	root *os.Root
}

// NewStore creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Get opens the file at path. It returns apitour.ErrNotFound if the file does
// not exist or is a directory, and apitour.ErrInvalidInput if path is not a
// local path under the root.
func (s *Store) Get(ctx context.Context, path string) (apitour.StaticFile, error) {
	if err := ctx.Err(); err != nil {
		return apitour.StaticFile{}, err
	}

	if !filepath.IsLocal(path) {
		return apitour.StaticFile{}, fmt.Errorf("get %q: %w", path, apitour.ErrInvalidInput)
	}

	f, err := s.root.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apitour.StaticFile{}, fmt.Errorf("get %q: %w", path, apitour.ErrNotFound)
		}
		return apitour.StaticFile{}, fmt.Errorf("failed to open file: %w", err)
	}

	success := false
	defer func() {
		if success {
			return
		}
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", path, "err", closeErr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return apitour.StaticFile{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return apitour.StaticFile{}, fmt.Errorf("get %q: is a directory: %w", path, apitour.ErrNotFound)
	}

	etag, err := hashContent(ctx, f)
	if err != nil {
		return apitour.StaticFile{}, err
	}

	success = true
	return apitour.StaticFile{
		Content:     f,
		ContentType: detectContentType(path),
		ETag:        `"` + etag + `"`,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// hashContent returns the hex SHA256 of f and rewinds it.
func hashContent(ctx context.Context, f io.ReadSeeker) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, &ctxReader{ctx: ctx, r: f}); err != nil {
		return "", fmt.Errorf("could not hash file contents: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("could not rewind file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func detectContentType(path string) string {
	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
