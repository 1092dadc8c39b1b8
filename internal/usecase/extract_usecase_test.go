package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
)

type fakeExtractor struct {
	post *entity.ExtractedPost
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*entity.ExtractedPost, error) {
	return f.post, f.err
}

func TestExtractPassesThroughResult(t *testing.T) {
	post := &entity.ExtractedPost{URL: "https://cafe.example.com/c/1", ContentText: "body"}
	uc := NewExtractUseCase(&fakeExtractor{post: post})

	got, err := uc.Extract(context.Background(), post.URL)
	require.NoError(t, err)
	assert.Same(t, post, got)
}

func TestExtractPropagatesTypedFailure(t *testing.T) {
	uc := NewExtractUseCase(&fakeExtractor{err: repository.ErrContentNotFound})

	_, err := uc.Extract(context.Background(), "https://cafe.example.com/c/1")
	require.ErrorIs(t, err, repository.ErrContentNotFound)
}
