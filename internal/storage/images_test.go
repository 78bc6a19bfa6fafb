package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/bilgisen/feedharvest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	data        []byte
	contentType string
	err         error
}

func (f fakeDownloader) Download(context.Context, string) ([]byte, string, error) {
	return f.data, f.contentType, f.err
}

type memorySink struct {
	files map[string][]byte
	types map[string]string
	err   error
}

func newMemorySink() *memorySink {
	return &memorySink{files: map[string][]byte{}, types: map[string]string{}}
}

func (m *memorySink) Store(_ context.Context, data []byte, filename, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.files[filename] = data
	m.types[filename] = contentType
	return "mem://" + filename, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func fixedID() string { return "fixed" }

func TestImageStore_SaveUsesURLExtension(t *testing.T) {
	sink := newMemorySink()
	store := NewImageStore(fakeDownloader{data: []byte("jpeg-bytes"), contentType: "image/gif"}, sink)
	store.newID = fixedID

	got, err := store.Save(context.Background(), "https://example.com/photo.jpeg?w=1")
	require.NoError(t, err)

	assert.Equal(t, models.StoredImage{
		Name:      "fixed.jpeg",
		Reference: "mem://fixed.jpeg",
		SourceURL: "https://example.com/photo.jpeg?w=1",
	}, got)
	assert.Equal(t, "image/gif", sink.types["fixed.jpeg"])
}

func TestImageStore_SniffsMissingContentType(t *testing.T) {
	sink := newMemorySink()
	store := NewImageStore(fakeDownloader{data: pngBytes(t), contentType: "application/octet-stream"}, sink)
	store.newID = fixedID

	got, err := store.Save(context.Background(), "https://example.com/image")
	require.NoError(t, err)
	assert.Equal(t, "fixed.png", got.Name)
	assert.Equal(t, "image/png", sink.types["fixed.png"])
}

func TestImageStore_RandomNames(t *testing.T) {
	store := NewImageStore(fakeDownloader{data: pngBytes(t), contentType: "image/png"}, newMemorySink())

	a, err := store.Save(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.NotEqual(t, a.Name, b.Name)
}

func TestImageStore_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := NewImageStore(fakeDownloader{err: errors.New("timeout")}, newMemorySink()).Save(ctx, "https://example.com/a.jpg")
	assert.ErrorIs(t, err, models.ErrUnresolvableImage)

	_, err = NewImageStore(fakeDownloader{}, newMemorySink()).Save(ctx, "https://example.com/a.jpg")
	assert.ErrorIs(t, err, models.ErrUnresolvableImage)

	html := fakeDownloader{data: []byte("<html><body>not found</body></html>"), contentType: "text/html"}
	_, err = NewImageStore(html, newMemorySink()).Save(ctx, "https://example.com/a.jpg")
	assert.ErrorIs(t, err, models.ErrUnresolvableImage)

	failing := newMemorySink()
	failing.err = errors.New("disk full")
	_, err = NewImageStore(fakeDownloader{data: pngBytes(t), contentType: "image/png"}, failing).Save(ctx, "https://example.com/a.png")
	assert.ErrorIs(t, err, models.ErrStorageFailure)
}
