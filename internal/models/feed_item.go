package models

import "time"

// FeedItem is one assembled entry of a parsed feed
type FeedItem struct {
	Title       string        `json:"title"`
	Link        string        `json:"link"`
	PubDate     string        `json:"pub_date"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	Images      []StoredImage `json:"images"`
	LeadImage   string        `json:"lead_image,omitempty"`

	ChannelTitle       string `json:"channel_title"`
	ChannelLink        string `json:"channel_link"`
	ChannelDescription string `json:"channel_description"`
}

// Content is the result of resolving a post's full article body.
type Content struct {
	HTML   string   `json:"content"`
	Images []string `json:"images"`
}

// IsEmpty reports whether nothing was extracted.
func (c Content) IsEmpty() bool {
	return c.HTML == "" && len(c.Images) == 0
}
