package repository

import (
	"context"

	"github.com/user/cafe-notion-service/internal/entity"
)

// PostExtractor defines the contract for the browser-driven post extraction mechanism.
type PostExtractor interface {
	// Extract navigates to a post URL and returns the normalized post record.
	Extract(ctx context.Context, url string) (*entity.ExtractedPost, error)
}
