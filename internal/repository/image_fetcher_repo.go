package repository

import (
	"context"

	"github.com/user/cafe-notion-service/internal/entity"
)

// ImageFetcher defines the contract for re-downloading post images over the
// authenticated session.
type ImageFetcher interface {
	// Fetch downloads a bounded, de-duplicated set of image URLs. Per-URL
	// failures are skipped; only a missing session fails the whole call.
	Fetch(ctx context.Context, urls []string) ([]entity.ImagePayload, error)
}
