package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/metrics"
)

// Extractor defines the interface for running one extraction request.
type Extractor interface {
	Extract(ctx context.Context, url string) (*entity.ExtractedPost, error)
}

type extractUseCase struct {
	extractorRepo repository.PostExtractor
}

// NewExtractUseCase creates the extraction use case.
func NewExtractUseCase(extractorRepo repository.PostExtractor) Extractor {
	return &extractUseCase{extractorRepo: extractorRepo}
}

func (uc *extractUseCase) Extract(ctx context.Context, url string) (*entity.ExtractedPost, error) {
	start := time.Now()
	post, err := uc.extractorRepo.Extract(ctx, url)
	duration := time.Since(start)
	metrics.ExtractionDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("failure").Inc()
		slog.Error("extraction failed", "url", url, "error", err)
		return nil, err
	}

	metrics.ExtractionsTotal.WithLabelValues("success").Inc()
	slog.Info("extraction succeeded",
		"url", url,
		"title", post.Title,
		"bodyLength", len(post.ContentText),
		"imageCount", len(post.ImageURLs),
		"duration_ms", duration.Milliseconds(),
	)
	return post, nil
}
