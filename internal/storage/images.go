package storage

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/bilgisen/feedharvest/internal/extract"
	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Downloader returns the raw bytes and content type of a URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// ImageStore downloads images and hands them to a sink under a random name.
type ImageStore struct {
	downloader Downloader
	sink       ImageSink
	newID      func() string
}

func NewImageStore(downloader Downloader, sink ImageSink) *ImageStore {
	return &ImageStore{
		downloader: downloader,
		sink:       sink,
		newID:      uuid.NewString,
	}
}

// Save downloads imageURL and persists it. Download and identification
// problems wrap models.ErrUnresolvableImage, sink errors wrap
// models.ErrStorageFailure.
func (s *ImageStore) Save(ctx context.Context, imageURL string) (models.StoredImage, error) {
	data, contentType, err := s.downloader.Download(ctx, imageURL)
	if err != nil {
		return models.StoredImage{}, fmt.Errorf("%w: %v", models.ErrUnresolvableImage, err)
	}
	if len(data) == 0 {
		return models.StoredImage{}, fmt.Errorf("%w: empty body from %s", models.ErrUnresolvableImage, imageURL)
	}

	mimeType := imageMIME(contentType, data)
	if mimeType == "" {
		return models.StoredImage{}, fmt.Errorf("%w: %s is not an image", models.ErrUnresolvableImage, imageURL)
	}

	name := s.newID() + "." + extract.InferExtension(imageURL, mimeType)
	ref, err := s.sink.Store(ctx, data, name, mimeType)
	if err != nil {
		return models.StoredImage{}, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	return models.StoredImage{
		Name:      name,
		Reference: ref,
		SourceURL: imageURL,
	}, nil
}

// imageMIME trusts an image/* Content-Type header and sniffs the bytes
// otherwise. It returns "" for content that is not an image.
func imageMIME(contentType string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	detected := mimetype.Detect(data)
	if strings.HasPrefix(detected.String(), "image/") {
		return detected.String()
	}
	return ""
}
