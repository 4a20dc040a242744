package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/skbags/storefront/pkg/errors"
)

// classifyTransport maps failures of the HTTP call itself. Anything that never
// produced a response is a connection-level failure.
func classifyTransport(err error) *pkgerrors.Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return pkgerrors.Wrap(pkgerrors.CodeConnectionError, err, "request timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return pkgerrors.Wrap(pkgerrors.CodeConnectionError, err, "network failure")
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return pkgerrors.Wrap(pkgerrors.CodeConnectionError, err, "failed to reach store api")
	}
	return pkgerrors.Wrap(pkgerrors.CodeConnectionError, err, "failed to reach store api")
}

// classifyStatus maps a non-2xx response to the storefront's error taxonomy.
// Unmatched statuses keep the server's own message verbatim.
func classifyStatus(status int, message string) *pkgerrors.Error {
	switch {
	case status >= http.StatusInternalServerError:
		return pkgerrors.New(pkgerrors.CodeServerError, withFallback(message, "store api returned a server error"))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return pkgerrors.New(pkgerrors.CodeInvalidRequest, withFallback(message, "store api rejected the request"))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeNotAuthorized, withFallback(message, "store api denied access"))
	case status == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, withFallback(message, "resource not found"))
	default:
		return pkgerrors.New(pkgerrors.CodeUnknown, withFallback(message, http.StatusText(status)))
	}
}

// errorMessage digs the human-readable message out of a failure body. The
// store API answers with either {"message": ...} or FastAPI-style
// {"detail": ...}; anything else is passed through as text.
func errorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if len(payload.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(payload.Detail, &detail); err == nil {
				return detail
			}
			return string(payload.Detail)
		}
	}
	return trimmed
}

func withFallback(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}
