package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
)

var (
	// ErrSessionExpired is returned, wrapped with the original 401, when the
	// refresh token was rejected and the stored session has been cleared.
	ErrSessionExpired = errors.New("apiclient: session expired")

	// ErrMalformedResponse is returned when a response body cannot be decoded.
	ErrMalformedResponse = errors.New("apiclient: malformed response")
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a non-2xx response from a backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Method     string
	Path       string
	RequestID  string
	Body       []byte
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// errorBody covers the error shapes the CMS and platform return:
//
//	{"error": "not_found", "message": "..."}
//	{"error": {"code": "not_found", "message": "..."}}
//	{"error": "invalid_grant", "error_description": "..."}
type errorBody struct {
	Error            json.RawMessage `json:"error"`
	Code             string          `json:"code"`
	Message          string          `json:"message"`
	ErrorDescription string          `json:"error_description"`
}

func parseErrorResponse(method, path string, status int, header http.Header, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		RequestID:  header.Get(slogx.RequestIDHeader),
		Body:       body,
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Code
		apiErr.Message = eb.Message
		if eb.ErrorDescription != "" && apiErr.Message == "" {
			apiErr.Message = eb.ErrorDescription
		}

		if len(eb.Error) > 0 {
			var code string
			var nested struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			switch {
			case json.Unmarshal(eb.Error, &code) == nil:
				if apiErr.Code == "" {
					apiErr.Code = code
				} else if apiErr.Message == "" {
					apiErr.Message = code
				}
			case json.Unmarshal(eb.Error, &nested) == nil:
				if nested.Code != "" {
					apiErr.Code = nested.Code
				}
				if nested.Message != "" {
					apiErr.Message = nested.Message
				}
			}
		}
	}

	if apiErr.Code == "" && apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	return StatusCode(err) == status
}

func IsNotFound(err error) bool     { return IsStatus(err, http.StatusNotFound) }
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }
func IsForbidden(err error) bool    { return IsStatus(err, http.StatusForbidden) }
