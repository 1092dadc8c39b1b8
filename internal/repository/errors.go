package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionStateMissing indicates the persisted browsing session file does not exist.
	// Callers must report this before any network activity.
	ErrSessionStateMissing = errors.New("session state file not found, run the session bootstrap first")

	// ErrContentNotFound indicates every extraction fallback was exhausted without body text.
	ErrContentNotFound = errors.New("post content not found, selectors or iframes may have changed")

	// ErrDestinationConfigMissing indicates required destination configuration is absent.
	ErrDestinationConfigMissing = errors.New("missing destination configuration")

	// ErrSchemaTitleMissing indicates the destination database has no title-typed property.
	ErrSchemaTitleMissing = errors.New("no title property found on destination database")

	// ErrFileUploadInit indicates the upload-slot request returned no usable URL or id.
	ErrFileUploadInit = errors.New("failed to initialize file upload")
)

// DestinationAPIError carries a non-success response from the destination API
// so the boundary layer can map it without inspecting raw text.
type DestinationAPIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *DestinationAPIError) Error() string {
	return fmt.Sprintf("destination API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}
