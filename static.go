package apitour

import (
	"context"
	"io"
	"time"
)

// StaticFile is an opened file ready to be served.
// The caller is responsible for closing Content.
type StaticFile struct {
	Content     io.ReadSeekCloser
	ContentType string
	ETag        string
	Size        int64
	ModTime     time.Time
}

// StaticStore serves read-only files from disk or any other backend.
type StaticStore interface {
	// Get opens the file at path. It returns ErrNotFound when the file does
	// not exist and ErrInvalidInput for paths escaping the store.
	Get(ctx context.Context, path string) (StaticFile, error)
}
