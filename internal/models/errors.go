package models

import "errors"

// Failure classes of the harvesting pipeline. Callers wrap them with
// fmt.Errorf("...: %w", ...) and test with errors.Is.
var (
	// ErrUnreachableSource means a feed, page or image URL could not be fetched
	// (transport failure, timeout or non-2xx status).
	ErrUnreachableSource = errors.New("unreachable source")

	// ErrMalformedDocument means a feed or HTML document could not be parsed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUnresolvableImage means an image could not be downloaded or identified.
	ErrUnresolvableImage = errors.New("unresolvable image")

	// ErrStorageFailure means the image sink rejected a write.
	ErrStorageFailure = errors.New("storage failure")

	// ErrInvalidConfig is the only startup-fatal condition.
	ErrInvalidConfig = errors.New("invalid configuration")
)
