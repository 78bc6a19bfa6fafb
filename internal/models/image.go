package models

// ImageCandidate is an <img> reference discovered in a content fragment.
// Width and Height are zero when the markup does not declare them.
type ImageCandidate struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// StoredImage is an image persisted by an image sink.
type StoredImage struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
	SourceURL string `json:"source_url"`
}
