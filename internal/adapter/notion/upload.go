package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
)

type fileUploadInit struct {
	ID        string `json:"id"`
	UploadURL string `json:"upload_url"`
}

// createFileUpload reserves an upload slot (phase one of the protocol).
func (c *Client) createFileUpload(ctx context.Context) (*fileUploadInit, error) {
	var init fileUploadInit
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/v1/file_uploads", struct{}{}, &init); err != nil {
		return nil, err
	}
	return &init, nil
}

// uploadFile runs the two-phase protocol for one image: reserve a slot, then
// send the binary as a multipart body to the returned URL.
func (c *Client) uploadFile(ctx context.Context, payload entity.ImagePayload) (string, error) {
	init, err := c.createFileUpload(ctx)
	if err != nil {
		return "", err
	}
	if init.ID == "" || init.UploadURL == "" {
		return "", repository.ErrFileUploadInit
	}

	filename := payload.Filename
	if filename == "" {
		filename = "image"
	}
	contentType := payload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(payload.Buffer); err != nil {
		return "", fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, init.UploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("file upload failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &repository.DestinationAPIError{
			StatusCode: resp.StatusCode,
			Code:       "NOTION_API_ERROR",
			Message:    "file upload rejected",
		}
	}
	return init.ID, nil
}

// uploadImages uploads every payload, skipping failures. Publication must
// not fail because one image could not be re-hosted; successfully uploaded
// ids come back in submission order.
func (c *Client) uploadImages(ctx context.Context, images []entity.ImagePayload) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		id, err := c.uploadFile(ctx, img)
		if err != nil {
			slog.Warn("image upload failed, skipping", "filename", img.Filename, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
