package chromedp_extractor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// waitBestEffort runs an action under its own deadline and swallows the
// timeout. Used for waits that improve the odds of a rendered frame but must
// not fail the attempt.
func waitBestEffort(ctx context.Context, timeout time.Duration, action chromedp.Action) {
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := chromedp.Run(wctx, action); err != nil {
		slog.Debug("best-effort wait gave up", "error", err)
	}
}

// networkIdleQuiet is how long the network must stay silent to count as idle.
const networkIdleQuiet = 500 * time.Millisecond

// waitNetworkIdle blocks until no request has been in flight for a short
// quiet window, or until the timeout elapses. The timeout is swallowed: the
// page is usually still usable when a tracker keeps one request open.
func waitNetworkIdle(ctx context.Context, timeout time.Duration) {
	_ = chromedp.Run(ctx, network.Enable())

	var mu sync.Mutex
	inflight := make(map[network.RequestID]struct{})

	lctx, lcancel := context.WithCancel(ctx)
	defer lcancel()

	chromedp.ListenTarget(lctx, func(ev interface{}) {
		mu.Lock()
		defer mu.Unlock()
		switch e := ev.(type) {
		case *network.EventRequestWillBeSent:
			inflight[e.RequestID] = struct{}{}
		case *network.EventLoadingFinished:
			delete(inflight, e.RequestID)
		case *network.EventLoadingFailed:
			delete(inflight, e.RequestID)
		}
	})

	start := time.Now()
	lastBusy := start
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		mu.Lock()
		busy := len(inflight) > 0
		mu.Unlock()

		now := time.Now()
		if busy {
			lastBusy = now
		}
		if now.Sub(lastBusy) >= networkIdleQuiet || now.Sub(start) >= timeout {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
