package request

// ExtractRequest asks for a single post to be pulled from the source site.
type ExtractRequest struct {
	URL string `json:"url"`
}

// SaveRequest republishes an extracted post to the destination database.
type SaveRequest struct {
	Title       string   `json:"title"`
	ContentText string   `json:"contentText"`
	URL         string   `json:"url"`
	DateText    string   `json:"dateText"`
	ImageURLs   []string `json:"imageUrls"`
}
