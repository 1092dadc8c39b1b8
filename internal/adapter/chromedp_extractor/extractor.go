package chromedp_extractor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/user/cafe-notion-service/internal/adapter/session"
	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/config"
	"github.com/user/cafe-notion-service/pkg/utils"
)

// Extractor drives a headless browser to pull a single post out of the
// source site's frame-heavy desktop layout, falling back to the mobile
// layout when the desktop pass yields no body text.
type Extractor struct {
	store         *session.Store
	cfg           *config.Config
	allocatorPool *sync.Pool
}

// NewExtractor creates the browser-backed extractor. Allocator contexts are
// pooled so concurrent requests don't each spawn a browser process.
func NewExtractor(store *session.Store, cfg *config.Config) repository.PostExtractor {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.UserAgent(`Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	for i := 0; i < cfg.MaxBrowserContexts; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &Extractor{
		store:         store,
		cfg:           cfg,
		allocatorPool: pool,
	}
}

// Extract runs the PC attempt, then the mobile fallback, and returns the
// normalized post. The session state must exist before any navigation.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*entity.ExtractedPost, error) {
	state, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	allocCtx := e.allocatorPool.Get().(context.Context)
	defer e.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	taskCtx, cancel = context.WithTimeout(taskCtx, e.cfg.PageLoadTimeout)
	defer cancel()

	if err := chromedp.Run(taskCtx, restoreSession(state)); err != nil {
		return nil, fmt.Errorf("failed to restore session cookies: %w", err)
	}

	best, err := e.extractDesktop(taskCtx, rawURL)
	if err != nil {
		return nil, err
	}

	if best.ContentText == "" {
		mobileURL, ok := utils.ToMobileURL(rawURL, e.cfg.SourceHost)
		if ok {
			slog.Info("desktop extraction empty, retrying mobile layout", "url", mobileURL)
			best, err = e.extractMobile(taskCtx, mobileURL)
			if err != nil {
				return nil, err
			}
		}
	}

	if best.ContentText == "" {
		return nil, repository.ErrContentNotFound
	}

	post := &entity.ExtractedPost{
		URL:         rawURL,
		Title:       best.Title,
		ContentText: best.ContentText,
		DateText:    best.DateText,
		ImageURLs:   best.ImageURLs,
	}
	if post.ImageURLs == nil {
		post.ImageURLs = []string{}
	}
	return post, nil
}

// extractDesktop navigates the canonical URL, waits for the content iframe
// to settle, snapshots all frames once, and keeps the candidate with the
// longest body text (ties keep the first).
func (e *Extractor) extractDesktop(ctx context.Context, url string) (fieldResult, error) {
	if err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fieldResult{}, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	// The article iframe attaches late; give it a bounded chance to appear,
	// then a short settle for its internal rendering, then quiet network.
	waitBestEffort(ctx, e.cfg.FrameWaitTimeout, chromedp.WaitReady(contentFrameSelector, chromedp.ByQuery))
	_ = chromedp.Run(ctx, chromedp.Sleep(e.cfg.FrameSettleDelay))
	waitNetworkIdle(ctx, e.cfg.NetworkIdleTimeout)

	frames, err := snapshotFrames(ctx)
	if err != nil {
		return fieldResult{}, err
	}

	var best fieldResult
	for _, f := range rankFrames(frames) {
		res := extractFields(f.HTML, f.URL)
		if res.ContentText != "" && len(res.ContentText) > len(best.ContentText) {
			best = res
		}
	}
	return best, nil
}

// extractMobile reads the mobile layout straight from the top-level
// document; the mobile site renders the post without frames.
func (e *Extractor) extractMobile(ctx context.Context, url string) (fieldResult, error) {
	if err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fieldResult{}, fmt.Errorf("failed to navigate to mobile layout %s: %w", url, err)
	}
	waitNetworkIdle(ctx, e.cfg.NetworkIdleTimeout)

	var html, location string
	if err := chromedp.Run(ctx,
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return fieldResult{}, fmt.Errorf("failed to read mobile document: %w", err)
	}
	return extractFields(html, location), nil
}
