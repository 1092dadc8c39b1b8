package entity

// ExtractedPost is the normalized result of one extraction run.
// ContentText is guaranteed non-empty on success; ImageURLs holds no
// duplicates and preserves first-seen order.
type ExtractedPost struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	ContentText string   `json:"contentText"`
	DateText    string   `json:"dateText"`
	ImageURLs   []string `json:"imageUrls"`
}

// ImagePayload is one image downloaded over the authenticated session,
// ready to be re-hosted on the destination.
type ImagePayload struct {
	Buffer      []byte
	ContentType string
	Filename    string
}

// PublishedPage identifies a page created on the destination.
type PublishedPage struct {
	ID  string
	URL string
}
