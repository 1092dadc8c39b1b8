package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/joho/godotenv"
	"github.com/user/cafe-notion-service/internal/adapter/session"
	"github.com/user/cafe-notion-service/pkg/config"
	"github.com/user/cafe-notion-service/pkg/logger"
)

// Interactive session bootstrap: opens a visible browser at the source
// site's login page, waits for the operator to sign in, then persists the
// browser's cookies for the API server to reuse.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(os.Stdout, slog.LevelInfo)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	if err := chromedp.Run(taskCtx, chromedp.Navigate(cfg.LoginURL)); err != nil {
		slog.Error("failed to open login page", "url", cfg.LoginURL, "error", err)
		os.Exit(1)
	}

	fmt.Println("Complete the login in the browser window, then press Enter here.")
	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		slog.Error("failed to read confirmation", "error", err)
		os.Exit(1)
	}

	var cookies []*network.Cookie
	err := chromedp.Run(taskCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = storage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		slog.Error("failed to read browser cookies", "error", err)
		os.Exit(1)
	}

	state := &session.State{Cookies: make([]session.Cookie, 0, len(cookies))}
	for _, c := range cookies {
		state.Cookies = append(state.Cookies, session.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}

	store := session.NewStore(cfg.SessionStatePath)
	if err := store.Save(state); err != nil {
		slog.Error("failed to save session state", "error", err)
		os.Exit(1)
	}
	slog.Info("session state saved", "path", cfg.SessionStatePath, "cookies", len(state.Cookies))
}
