package storage

import "context"

// ImageSink persists image bytes under a file name and returns a reference
// (path or URL) the caller can hand out.
type ImageSink interface {
	Store(ctx context.Context, data []byte, filename, contentType string) (string, error)
}
