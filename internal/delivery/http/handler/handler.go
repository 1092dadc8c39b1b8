package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/user/cafe-notion-service/internal/delivery/http/request"
	"github.com/user/cafe-notion-service/internal/delivery/http/response"
	"github.com/user/cafe-notion-service/internal/entity"
	"github.com/user/cafe-notion-service/internal/repository"
	"github.com/user/cafe-notion-service/internal/usecase"
)

type Handler struct {
	extractor usecase.Extractor
	saver     usecase.Saver
}

func NewHandler(extractor usecase.Extractor, saver usecase.Saver) *Handler {
	return &Handler{
		extractor: extractor,
		saver:     saver,
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.HealthResponse{OK: true})
}

func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req request.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if !isValidHTTPURL(req.URL) {
		h.writeError(w, http.StatusBadRequest, "INVALID_URL", "url must be an absolute http(s) URL")
		return
	}

	post, err := h.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response.ExtractResponse{OK: true, Data: post})
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req request.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	post := &entity.ExtractedPost{
		URL:         req.URL,
		Title:       req.Title,
		ContentText: req.ContentText,
		DateText:    req.DateText,
		ImageURLs:   req.ImageURLs,
	}

	page, err := h.saver.Save(r.Context(), post)
	if err != nil {
		h.writeMappedError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response.SaveResponse{
		OK:           true,
		NotionPageID: page.ID,
		NotionURL:    page.URL,
	})
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// mapError translates typed failures into the wire error contract. Anything
// untagged becomes an opaque internal error.
func mapError(err error) (int, string, string) {
	var apiErr *repository.DestinationAPIError
	switch {
	case errors.Is(err, repository.ErrSessionStateMissing):
		return http.StatusBadRequest, "STORAGE_STATE_NOT_FOUND", err.Error()
	case errors.Is(err, repository.ErrContentNotFound):
		return http.StatusInternalServerError, "CONTENT_NOT_FOUND", err.Error()
	case errors.Is(err, repository.ErrDestinationConfigMissing):
		return http.StatusInternalServerError, "NOTION_ENV_MISSING", err.Error()
	case errors.Is(err, repository.ErrSchemaTitleMissing):
		return http.StatusBadRequest, "TITLE_PROPERTY_NOT_FOUND", err.Error()
	case errors.Is(err, repository.ErrFileUploadInit):
		return http.StatusInternalServerError, "FILE_UPLOAD_INIT_FAILED", err.Error()
	case errors.As(err, &apiErr):
		return apiErr.StatusCode, apiErr.Code, apiErr.Message
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Server error occurred."
	}
}

func (h *Handler) writeMappedError(w http.ResponseWriter, err error) {
	status, code, message := mapError(err)
	h.writeError(w, status, code, message)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	body := &response.ErrorBody{Code: code, Message: message}
	h.writeJSON(w, status, map[string]interface{}{"ok": false, "error": body})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
