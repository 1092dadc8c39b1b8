package chromedp_extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/cafe-notion-service/internal/adapter/session"
)

// restoreSession injects the persisted cookies into the browser context so
// navigation happens with the bootstrapped authenticated session.
func restoreSession(state *session.State) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range state.Cookies {
			params := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithSecure(c.Secure).
				WithHTTPOnly(c.HTTPOnly)
			if c.Expires > 0 {
				expires := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
				params = params.WithExpires(&expires)
			}
			if err := params.Do(ctx); err != nil {
				return fmt.Errorf("failed to set cookie %q: %w", c.Name, err)
			}
		}
		return nil
	})
}
