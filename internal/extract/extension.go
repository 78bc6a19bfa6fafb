package extract

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// FallbackExtension is returned when neither the URL nor the MIME type give one.
const FallbackExtension = "bin"

var mimeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// InferExtension derives a file extension (without dot) for a downloaded
// resource. An extension in the URL path wins and is returned verbatim;
// otherwise the MIME type is mapped; otherwise FallbackExtension.
func InferExtension(rawURL, mimeType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.TrimPrefix(path.Ext(u.Path), "."); ext != "" {
			return ext
		}
	}

	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		if ext, ok := mimeExtensions[strings.ToLower(mediaType)]; ok {
			return ext
		}
	}
	return FallbackExtension
}
