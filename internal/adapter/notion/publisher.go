package notion

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/config"
)

// Publisher maps an extracted post onto the destination schema and creates
// the page: schema discovery, date normalization, best-effort image upload,
// block assembly, one page-creation call.
type Publisher struct {
	client *Client
	cfg    *config.Config
}

func NewPublisher(cfg *config.Config) repository.PagePublisher {
	return &Publisher{client: NewClient(cfg), cfg: cfg}
}

func (p *Publisher) CheckConfig() error {
	return p.client.checkConfig()
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type pageRequest struct {
	Parent     parentRef              `json:"parent"`
	Properties map[string]interface{} `json:"properties"`
	Children   []block                `json:"children"`
}

type pageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (p *Publisher) Publish(ctx context.Context, post *entity.ExtractedPost, images []entity.ImagePayload) (*entity.PublishedPage, error) {
	if err := p.client.checkConfig(); err != nil {
		return nil, err
	}

	db, err := p.client.getDatabase(ctx)
	if err != nil {
		return nil, err
	}

	titleProp, ok := findTitleProperty(db)
	if !ok {
		return nil, repository.ErrSchemaTitleMissing
	}

	title := post.Title
	if title == "" {
		title = "Untitled"
	}
	properties := map[string]interface{}{
		titleProp: map[string]interface{}{
			"title": []richText{{Type: "text", Text: textSpan{Content: title}}},
		},
	}

	// URL and date properties are best-effort: when the schema lacks them
	// the page is still created, with the URL falling back to a paragraph.
	urlProp, hasURLProp := findPropertyByName(db, p.cfg.URLPropertyName, "url")
	if post.URL != "" && hasURLProp {
		properties[urlProp] = map[string]string{"url": post.URL}
	}

	if parsed := normalizeDate(post.DateText, p.cfg.DateUTCOffset); parsed != "" {
		if dateProp, ok := findPropertyByName(db, p.cfg.DatePropertyName, "date"); ok {
			properties[dateProp] = map[string]interface{}{
				"date": map[string]string{"start": parsed},
			}
		}
	}

	fileIDs := p.client.uploadImages(ctx, images)

	req := pageRequest{
		Parent:     parentRef{DatabaseID: p.cfg.NotionDatabaseID},
		Properties: properties,
		Children:   buildChildren(post, fileIDs, hasURLProp),
	}

	var page pageResponse
	if err := p.client.doJSON(ctx, http.MethodPost, p.client.baseURL+"/v1/pages", req, &page); err != nil {
		return nil, err
	}

	slog.Info("destination page created", "pageID", page.ID, "uploadedImages", len(fileIDs))
	return &entity.PublishedPage{ID: page.ID, URL: page.URL}, nil
}
