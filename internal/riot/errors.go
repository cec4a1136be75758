package riot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an upstream failure once, at the client boundary,
// so callers never have to sniff message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindRateLimited
	KindAuthInvalid
	KindServerError
	KindDecryptionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindAuthInvalid:
		return "auth_invalid"
	case KindServerError:
		return "server_error"
	case KindDecryptionFailed:
		return "decryption_failed"
	default:
		return "unknown"
	}
}

// APIError is a classified Riot API failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot api: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// riotErrorBody matches Riot's {"status": {"message": ..., "status_code": ...}}.
type riotErrorBody struct {
	Status struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"status"`
}

func classifyError(statusCode int, body []byte) *APIError {
	msg := fmt.Sprintf("status code %d", statusCode)
	var parsed riotErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Status.Message != "" {
		msg = parsed.Status.Message
	}

	kind := KindUnknown
	switch {
	case statusCode == 404:
		kind = KindNotFound
	case statusCode == 429:
		kind = KindRateLimited
	case statusCode == 401 || statusCode == 403:
		kind = KindAuthInvalid
	case statusCode >= 500:
		kind = KindServerError
	case statusCode == 400 && strings.Contains(strings.ToLower(msg), "decrypt"):
		kind = KindDecryptionFailed
	}

	return &APIError{Kind: kind, StatusCode: statusCode, Message: msg}
}

// KindOf extracts the ErrorKind from err, or KindUnknown for non-API errors.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is an upstream 404. A 404 from the
// spectator or account endpoints is a valid negative result, not a fault.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	return KindOf(err) == KindRateLimited
}
