package chromedp_extractor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const frameURL = "https://cafe.example.com/ArticleRead.nhn?articleid=1"

func page(body string) string {
	return fmt.Sprintf("<html><head></head><body>%s</body></html>", body)
}

func TestExtractFieldsFirstMatchingSelectorWins(t *testing.T) {
	html := page(`
		<div class="article_viewer">this body is long enough to pass the gate</div>
		<div class="se-main-container">a later candidate that would also match just fine</div>
	`)

	res := extractFields(html, frameURL)
	assert.Equal(t, "this body is long enough to pass the gate", res.ContentText)
}

func TestExtractFieldsBodyLengthGate(t *testing.T) {
	nineteen := strings.Repeat("a", 19)
	twenty := strings.Repeat("a", 20)

	res := extractFields(page(`<div class="article_viewer">`+nineteen+`</div>`), frameURL)
	assert.Empty(t, res.ContentText, "19 characters must be rejected")

	res = extractFields(page(`<div class="article_viewer">`+twenty+`</div>`), frameURL)
	assert.Equal(t, twenty, res.ContentText, "20 characters must be accepted")
}

func TestExtractFieldsGatedCandidateFallsThrough(t *testing.T) {
	html := page(`
		<div class="article_viewer">too short</div>
		<div class="se-main-container">the second container carries the real body text</div>
	`)

	res := extractFields(html, frameURL)
	assert.Equal(t, "the second container carries the real body text", res.ContentText)
}

func TestExtractFieldsBodyGateCountsRunesNotBytes(t *testing.T) {
	// 20 Hangul syllables are 60 bytes but still exactly 20 characters.
	body := strings.Repeat("가", 20)
	res := extractFields(page(`<div class="article_viewer">`+body+`</div>`), frameURL)
	assert.Equal(t, body, res.ContentText)

	res = extractFields(page(`<div class="article_viewer">`+strings.Repeat("가", 19)+`</div>`), frameURL)
	assert.Empty(t, res.ContentText)
}

func TestExtractFieldsTitleAndDate(t *testing.T) {
	html := page(`
		<h3 class="title_text">Post title</h3>
		<h1>Fallback title</h1>
		<span class="date">2024.3.5 오후 2:30</span>
		<div class="article_viewer">body body body body body</div>
	`)

	res := extractFields(html, frameURL)
	assert.Equal(t, "Post title", res.Title)
	assert.Equal(t, "2024.3.5 오후 2:30", res.DateText)
}

func TestExtractFieldsImageDeduplicationPreservesOrder(t *testing.T) {
	html := page(`
		<div class="article_viewer">
			<img src="https://cdn.example.com/1.jpg">
			<img src="https://cdn.example.com/2.jpg">
			<img src="https://cdn.example.com/1.jpg">
			<img src="https://cdn.example.com/3.jpg">
			<img src="https://cdn.example.com/2.jpg">
			long enough body text for the quality gate
		</div>
	`)

	res := extractFields(html, frameURL)
	assert.Equal(t, []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
	}, res.ImageURLs)
}

func TestExtractFieldsLazyLoadAttributePriority(t *testing.T) {
	html := page(`
		<div class="article_viewer">
			<img data-src="https://cdn.example.com/real.jpg" src="https://cdn.example.com/placeholder.gif">
			<img data-lazy-src="https://cdn.example.com/lazy.jpg" src="https://cdn.example.com/placeholder.gif">
			<img src="https://cdn.example.com/plain.jpg">
			long enough body text for the quality gate
		</div>
	`)

	res := extractFields(html, frameURL)
	assert.Equal(t, []string{
		"https://cdn.example.com/real.jpg",
		"https://cdn.example.com/lazy.jpg",
		"https://cdn.example.com/plain.jpg",
	}, res.ImageURLs)
}

func TestExtractFieldsResolvesRelativeImageURLs(t *testing.T) {
	html := page(`
		<div class="article_viewer">
			<img src="/img/photo.jpg">
			long enough body text for the quality gate
		</div>
	`)

	res := extractFields(html, frameURL)
	assert.Equal(t, []string{"https://cafe.example.com/img/photo.jpg"}, res.ImageURLs)
}

func TestExtractFieldsEmptyDocument(t *testing.T) {
	res := extractFields(page(""), frameURL)
	assert.Empty(t, res.Title)
	assert.Empty(t, res.ContentText)
	assert.Empty(t, res.DateText)
	assert.Empty(t, res.ImageURLs)
}
