package response

import "github.com/user/cafe-notion-service/internal/entity"

// ErrorBody is the structured error shape returned to clients; raw errors
// and stack traces never cross this boundary.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ExtractResponse struct {
	OK    bool                  `json:"ok"`
	Data  *entity.ExtractedPost `json:"data,omitempty"`
	Error *ErrorBody            `json:"error,omitempty"`
}

type SaveResponse struct {
	OK           bool       `json:"ok"`
	NotionPageID string     `json:"notionPageId,omitempty"`
	NotionURL    string     `json:"notionUrl,omitempty"`
	Error        *ErrorBody `json:"error,omitempty"`
}
