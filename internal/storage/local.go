package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalDiskSink writes images into a directory on the local filesystem.
type LocalDiskSink struct {
	dir       string
	publicURL string
}

// NewLocalDiskSink creates dir if needed. When publicURL is set, references
// are publicURL + "/" + filename, otherwise the file path.
func NewLocalDiskSink(dir, publicURL string) (*LocalDiskSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalDiskSink{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *LocalDiskSink) Store(ctx context.Context, data []byte, filename, _ string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid image file name %q", filename)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + filename, nil
	}
	return path, nil
}
