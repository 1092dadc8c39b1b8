package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/metrics"
)

// Saver defines the interface for republishing an extracted post.
type Saver interface {
	Save(ctx context.Context, post *entity.ExtractedPost) (*entity.PublishedPage, error)
}

type saveUseCase struct {
	imageRepo     repository.ImageFetcher
	publisherRepo repository.PagePublisher
}

// NewSaveUseCase creates the publish use case.
func NewSaveUseCase(imageRepo repository.ImageFetcher, publisherRepo repository.PagePublisher) Saver {
	return &saveUseCase{imageRepo: imageRepo, publisherRepo: publisherRepo}
}

// Save downloads the post's images over the authenticated session, then
// publishes the post. Configuration is validated up front so a missing
// credential surfaces before any image download starts.
func (uc *saveUseCase) Save(ctx context.Context, post *entity.ExtractedPost) (*entity.PublishedPage, error) {
	start := time.Now()

	if err := uc.publisherRepo.CheckConfig(); err != nil {
		metrics.PublishesTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	var images []entity.ImagePayload
	if len(post.ImageURLs) > 0 {
		fetched, err := uc.imageRepo.Fetch(ctx, post.ImageURLs)
		if err != nil {
			metrics.PublishesTotal.WithLabelValues("failure").Inc()
			slog.Error("image download failed", "url", post.URL, "error", err)
			return nil, err
		}
		images = fetched
	}

	page, err := uc.publisherRepo.Publish(ctx, post, images)
	duration := time.Since(start)
	metrics.PublishDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.PublishesTotal.WithLabelValues("failure").Inc()
		slog.Error("publish failed", "url", post.URL, "error", err)
		return nil, err
	}

	metrics.PublishesTotal.WithLabelValues("success").Inc()
	slog.Info("publish succeeded",
		"url", post.URL,
		"pageID", page.ID,
		"imageCount", len(images),
		"duration_ms", duration.Milliseconds(),
	)
	return page, nil
}
