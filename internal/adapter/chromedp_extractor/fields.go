package chromedp_extractor

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/cafe-notion-service/pkg/utils"
)

// Selector candidates per field, most reliable first. The desktop and mobile
// layouts render the same post into very different markup, so every known
// container is listed and tried in order.
var (
	contentSelectors = []string{
		"div.article_viewer",
		"div.se-main-container",
		"div#postViewArea",
		"div.ArticleContentBox",
		"div.ContentRenderer",
	}

	titleSelectors = []string{
		"h3.title_text",
		"h2.title_text",
		"div.title_text",
		"h1",
	}

	dateSelectors = []string{
		"span.date",
		"span.article_info_date",
		"div.date",
	}

	imageSelectors = []string{
		"div.article_viewer img",
		"div.se-main-container img",
		"div#postViewArea img",
		"div.ArticleContentBox img",
		"div.ContentRenderer img",
	}
)

// imageSourceAttrs is the attribute priority for image sources. Lazy-load
// attributes carry the real URL while src often points at a placeholder.
var imageSourceAttrs = []string{"data-src", "data-lazy-src", "data-original", "src"}

// minBodyRunes is the quality gate for body text; anything shorter is
// boilerplate, not a post.
const minBodyRunes = 20

type fieldResult struct {
	Title       string
	ContentText string
	DateText    string
	ImageURLs   []string
}

// extractFields runs every selector set against one frame's HTML snapshot.
// A frame that fails to parse or matches nothing yields an empty result and
// the caller moves on to the next candidate.
func extractFields(html, frameURL string) fieldResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fieldResult{}
	}
	return fieldResult{
		Title:       tryCandidates(doc, titleSelectors, 1),
		ContentText: tryCandidates(doc, contentSelectors, minBodyRunes),
		DateText:    tryCandidates(doc, dateSelectors, 1),
		ImageURLs:   collectImageURLs(doc, frameURL),
	}
}

// tryCandidates returns the trimmed text of the first selector whose match
// meets the minimum length, never a later one.
func tryCandidates(doc *goquery.Document, selectors []string, minRunes int) string {
	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" && utf8.RuneCountInString(text) >= minRunes {
			return text
		}
	}
	return ""
}

// collectImageURLs returns the images of the first selector that matches
// any, de-duplicated preserving first-seen order. Relative sources are
// resolved against the frame URL so the downstream fetch can use them.
func collectImageURLs(doc *goquery.Document, frameURL string) []string {
	base, baseErr := url.Parse(frameURL)
	for _, sel := range imageSelectors {
		var urls []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			src := imageSource(s)
			if src == "" {
				return
			}
			if baseErr == nil && base.Scheme != "" {
				if abs, err := utils.ToAbsoluteURL(base, src); err == nil {
					src = abs
				}
			}
			urls = append(urls, src)
		})
		if len(urls) > 0 {
			return utils.DedupeStrings(urls)
		}
	}
	return nil
}

func imageSource(s *goquery.Selection) string {
	for _, attr := range imageSourceAttrs {
		if v, ok := s.Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
