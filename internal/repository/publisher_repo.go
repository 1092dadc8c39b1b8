package repository

import (
	"context"

	"github.com/user/cafe-notion-service/internal/entity"
)

// PagePublisher defines the contract for republishing a post to the destination.
type PagePublisher interface {
	// CheckConfig reports missing destination configuration without touching the network.
	CheckConfig() error
	// Publish creates one destination page from the post and its downloaded images.
	Publish(ctx context.Context, post *entity.ExtractedPost, images []entity.ImagePayload) (*entity.PublishedPage, error)
}
