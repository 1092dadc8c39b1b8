package httpfetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/user/cafe-notion-service/internal/adapter/session"
	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/utils"
)

const (
	// maxImages bounds the work done per request; excess URLs are dropped silently.
	maxImages = 10
	// maxImageBytes rejects payloads the destination would refuse anyway.
	maxImageBytes = 20 << 20
)

// Fetcher re-downloads post images over the authenticated session so the
// destination can re-host them.
type Fetcher struct {
	store *session.Store
}

func NewFetcher(store *session.Store) repository.ImageFetcher {
	return &Fetcher{store: store}
}

// Fetch downloads up to maxImages unique URLs. Per-URL failures are skipped,
// never aborting the batch; only a missing session fails the whole call, and
// it does so before any request is issued.
func (f *Fetcher) Fetch(ctx context.Context, urls []string) ([]entity.ImagePayload, error) {
	if len(urls) == 0 {
		return []entity.ImagePayload{}, nil
	}

	state, err := f.store.Load()
	if err != nil {
		return nil, err
	}

	unique := utils.DedupeStrings(urls)
	if len(unique) > maxImages {
		unique = unique[:maxImages]
	}

	client, err := newSessionClient(state)
	if err != nil {
		return nil, err
	}

	results := make([]entity.ImagePayload, 0, len(unique))
	for _, imageURL := range unique {
		payload, ok := f.fetchOne(ctx, client, imageURL, len(results)+1)
		if !ok {
			continue
		}
		results = append(results, payload)
	}
	return results, nil
}

// newSessionClient builds an HTTP client whose cookie jar is seeded from the
// persisted browsing session. Each call gets its own jar; no state is shared
// across requests.
func newSessionClient(state *session.State) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	for origin, cookies := range state.CookiesByOrigin() {
		u, err := url.Parse(origin)
		if err != nil {
			continue
		}
		jar.SetCookies(u, cookies)
	}
	return &http.Client{Jar: jar}, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, client *http.Client, imageURL string, seq int) (entity.ImagePayload, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		slog.Warn("skipping malformed image URL", "url", imageURL, "error", err)
		return entity.ImagePayload{}, false
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Warn("image download failed, skipping", "url", imageURL, "error", err)
		return entity.ImagePayload{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("image download returned non-success status, skipping", "url", imageURL, "status", resp.StatusCode)
		return entity.ImagePayload{}, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		slog.Warn("image download read failed, skipping", "url", imageURL, "error", err)
		return entity.ImagePayload{}, false
	}
	if len(body) == 0 || len(body) > maxImageBytes {
		slog.Warn("image body empty or oversized, skipping", "url", imageURL, "bytes", len(body))
		return entity.ImagePayload{}, false
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return entity.ImagePayload{
		Buffer:      body,
		ContentType: contentType,
		Filename:    fmt.Sprintf("image-%d-%d", time.Now().UnixMilli(), seq),
	}, true
}
