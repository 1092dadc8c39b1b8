package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		NotionToken:      "secret-token",
		NotionDatabaseID: "db-1",
		NotionVersion:    "2022-06-28",
		URLPropertyName:  "원문 링크",
		DatePropertyName: "후기 작성일",
		DateUTCOffset:    9,
	}
}

// fakeDestination is a minimal in-memory stand-in for the destination API.
type fakeDestination struct {
	mu          sync.Mutex
	schema      map[string]propertySchema
	failUploads bool
	uploadSeq   int
	pageCalls   int
	uploadCalls int
	lastPage    map[string]json.RawMessage
	server      *httptest.Server
}

func newFakeDestination(t *testing.T, schema map[string]propertySchema) *fakeDestination {
	t.Helper()
	f := &fakeDestination{schema: schema}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/databases/db-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))
		json.NewEncoder(w).Encode(map[string]interface{}{"properties": f.schema})
	})
	mux.HandleFunc("POST /v1/file_uploads", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failUploads {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"code": "internal_server_error", "message": "upload init failed"})
			return
		}
		f.uploadSeq++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         "file-" + string(rune('0'+f.uploadSeq)),
			"upload_url": f.server.URL + "/upload",
		})
	})
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.uploadCalls++
		f.mu.Unlock()
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, _, err := r.FormFile("file")
		assert.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /v1/pages", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.pageCalls++
		f.mu.Unlock()
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.lastPage = body
		json.NewEncoder(w).Encode(map[string]string{"id": "page-1", "url": "https://notion.example.com/page-1"})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func newTestPublisher(dest *fakeDestination) *Publisher {
	cfg := testConfig()
	client := NewClient(cfg)
	client.baseURL = dest.server.URL
	return &Publisher{client: client, cfg: cfg}
}

func fullSchema() map[string]propertySchema {
	return map[string]propertySchema{
		"이름":     {Type: "title"},
		"원문 링크":  {Type: "url"},
		"후기 작성일": {Type: "date"},
	}
}

func TestPublishCreatesPage(t *testing.T) {
	dest := newFakeDestination(t, fullSchema())
	pub := newTestPublisher(dest)

	post := &entity.ExtractedPost{
		URL:         "https://cafe.example.com/c/1",
		Title:       "Post title",
		ContentText: "body text long enough",
		DateText:    "2024.3.5 오후 2:30",
		ImageURLs:   []string{"https://cdn.example.com/a.jpg"},
	}

	page, err := pub.Publish(context.Background(), post, nil)
	require.NoError(t, err)
	assert.Equal(t, "page-1", page.ID)
	assert.Equal(t, "https://notion.example.com/page-1", page.URL)

	var properties map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(dest.lastPage["properties"], &properties))
	assert.Contains(t, properties, "이름")
	assert.Contains(t, properties, "원문 링크")
	assert.Contains(t, properties, "후기 작성일")

	var dateProp struct {
		Date struct {
			Start string `json:"start"`
		} `json:"date"`
	}
	require.NoError(t, json.Unmarshal(properties["후기 작성일"], &dateProp))
	assert.Equal(t, "2024-03-05T14:30:00+09:00", dateProp.Date.Start)

	// URL went into its property, so the body starts with the image block.
	var children []block
	require.NoError(t, json.Unmarshal(dest.lastPage["children"], &children))
	require.Len(t, children, 2)
	assert.Equal(t, "image", children[0].Type)
	assert.Equal(t, "external", children[0].Image.Type)
	assert.Equal(t, "paragraph", children[1].Type)
}

func TestPublishMissingTitlePropertyFailsBeforePageCreation(t *testing.T) {
	dest := newFakeDestination(t, map[string]propertySchema{
		"원문 링크": {Type: "url"},
	})
	pub := newTestPublisher(dest)

	_, err := pub.Publish(context.Background(), &entity.ExtractedPost{ContentText: "x"}, nil)
	require.ErrorIs(t, err, repository.ErrSchemaTitleMissing)
	assert.Zero(t, dest.pageCalls)
}

func TestPublishUploadsImagesAndLinksThem(t *testing.T) {
	dest := newFakeDestination(t, fullSchema())
	pub := newTestPublisher(dest)

	images := []entity.ImagePayload{
		{Buffer: []byte("jpegdata"), ContentType: "image/jpeg", Filename: "image-1"},
		{Buffer: []byte("pngdata"), ContentType: "image/png", Filename: "image-2"},
	}
	post := &entity.ExtractedPost{
		URL:         "https://cafe.example.com/c/1",
		Title:       "t",
		ContentText: "body",
		ImageURLs:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.png"},
	}

	_, err := pub.Publish(context.Background(), post, images)
	require.NoError(t, err)
	assert.Equal(t, 2, dest.uploadCalls)

	var children []block
	require.NoError(t, json.Unmarshal(dest.lastPage["children"], &children))
	require.Len(t, children, 3)
	assert.Equal(t, "file_upload", children[0].Image.Type)
	assert.Equal(t, "file_upload", children[1].Image.Type)
}

func TestPublishUploadFailureFallsBackToExternalLinks(t *testing.T) {
	dest := newFakeDestination(t, fullSchema())
	dest.failUploads = true
	pub := newTestPublisher(dest)

	post := &entity.ExtractedPost{
		URL:         "https://cafe.example.com/c/1",
		Title:       "t",
		ContentText: "body",
		ImageURLs:   []string{"https://cdn.example.com/a.jpg"},
	}
	images := []entity.ImagePayload{{Buffer: []byte("x"), ContentType: "image/jpeg"}}

	page, err := pub.Publish(context.Background(), post, images)
	require.NoError(t, err, "a failed upload must not fail the publish")
	assert.Equal(t, "page-1", page.ID)

	var children []block
	require.NoError(t, json.Unmarshal(dest.lastPage["children"], &children))
	require.Len(t, children, 2)
	assert.Equal(t, "external", children[0].Image.Type)
}

func TestPublishUntitledFallback(t *testing.T) {
	dest := newFakeDestination(t, fullSchema())
	pub := newTestPublisher(dest)

	_, err := pub.Publish(context.Background(), &entity.ExtractedPost{ContentText: "body"}, nil)
	require.NoError(t, err)

	var properties map[string]struct {
		Title []richText `json:"title"`
	}
	require.NoError(t, json.Unmarshal(dest.lastPage["properties"], &properties))
	assert.Equal(t, "Untitled", properties["이름"].Title[0].Text.Content)
}

func TestPublishAPIErrorCarriesUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"code": "object_not_found", "message": "database missing"})
	}))
	t.Cleanup(server.Close)

	cfg := testConfig()
	client := NewClient(cfg)
	client.baseURL = server.URL
	pub := &Publisher{client: client, cfg: cfg}

	_, err := pub.Publish(context.Background(), &entity.ExtractedPost{ContentText: "x"}, nil)

	var apiErr *repository.DestinationAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "object_not_found", apiErr.Code)
	assert.Equal(t, "database missing", apiErr.Message)
}

func TestPublishMissingConfig(t *testing.T) {
	cfg := testConfig()
	cfg.NotionToken = ""
	pub := &Publisher{client: NewClient(cfg), cfg: cfg}

	_, err := pub.Publish(context.Background(), &entity.ExtractedPost{ContentText: "x"}, nil)
	require.ErrorIs(t, err, repository.ErrDestinationConfigMissing)
	assert.Contains(t, err.Error(), "NOTION_TOKEN")

	assert.ErrorIs(t, pub.CheckConfig(), repository.ErrDestinationConfigMissing)
}
