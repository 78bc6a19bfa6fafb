package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestExternalMediaSink_Store(t *testing.T) {
	putter := &fakePutter{}
	sink := NewExternalMediaSink(putter, MediaOptions{Bucket: "media", Collection: "/news/images/", PublicURL: "https://media.example.com/"})

	ref, err := sink.Store(context.Background(), []byte("bytes"), "abc.webp", "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://media.example.com/news/images/abc.webp", ref)
	assert.Equal(t, "media", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "news/images/abc.webp", aws.ToString(putter.input.Key))
	assert.Equal(t, "image/webp", aws.ToString(putter.input.ContentType))
	assert.Equal(t, int64(5), aws.ToInt64(putter.input.ContentLength))
	assert.Equal(t, "bytes", string(putter.body))
}

func TestExternalMediaSink_NoPublicURL(t *testing.T) {
	sink := NewExternalMediaSink(&fakePutter{}, MediaOptions{Bucket: "media"})

	ref, err := sink.Store(context.Background(), []byte("b"), "abc.jpg", "")
	require.NoError(t, err)
	assert.Equal(t, "s3://media/abc.jpg", ref)
}

func TestExternalMediaSink_UploadError(t *testing.T) {
	sink := NewExternalMediaSink(&fakePutter{err: errors.New("access denied")}, MediaOptions{Bucket: "media"})

	_, err := sink.Store(context.Background(), []byte("b"), "abc.jpg", "")
	assert.ErrorContains(t, err, "access denied")
}
