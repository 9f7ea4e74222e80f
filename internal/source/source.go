// Package source fetches topology documents from the local disk or from a
// git repository.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmehra7/summingbird/internal/logger"
	apperrors "github.com/pmehra7/summingbird/pkg/errors"
)

// Loader fetches the raw bytes of a topology document. The returned location
// describes where the document was read from and is suitable for error
// messages.
type Loader interface {
	Load(ctx context.Context, ref string) ([]byte, string, error)
}

// FileLoader reads topology documents from the local filesystem.
type FileLoader struct {
	Log *logger.Logger
}

// NewFileLoader creates a FileLoader.
func NewFileLoader(log *logger.Logger) *FileLoader {
	return &FileLoader{Log: log}
}

// Load reads the file at ref.
func (l *FileLoader) Load(ctx context.Context, ref string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, ref, apperrors.NewSourceError(ref, err)
	}
	if ref == "" {
		return nil, ref, apperrors.NewSourceError(ref, fmt.Errorf("no topology path given"))
	}

	location := ref
	if abs, err := filepath.Abs(ref); err == nil {
		location = abs
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, location, apperrors.NewSourceError(location, err)
	}

	l.Log.WithFields(map[string]any{
		"location": location,
		"bytes":    len(data),
	}).Debug("topology read")
	return data, location, nil
}

// IsNotFound reports whether err means the requested document does not exist.
func IsNotFound(err error) bool {
	var srcErr *apperrors.SourceError
	if !errors.As(err, &srcErr) {
		return false
	}
	return errors.Is(srcErr.Err, fs.ErrNotExist)
}
