package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/surmado/surmado-go/internal/core/domain"
)

// KindForStatus maps a non-2xx HTTP status to an error kind.
func KindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.KindValidation
	case http.StatusUnauthorized:
		return domain.KindAuthentication
	case http.StatusPaymentRequired:
		return domain.KindInsufficientCredits
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusTooManyRequests:
		return domain.KindRateLimit
	default:
		return domain.KindService
	}
}

// MapError converts a non-2xx response into a *domain.Error. The status
// code and body are kept unmodified.
func MapError(status int, header http.Header, body []byte, now time.Time) *domain.Error {
	e := &domain.Error{
		Kind:       KindForStatus(status),
		StatusCode: status,
		Body:       body,
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		e.Response = decoded
		e.Message = messageFrom(decoded)
	}
	if e.Message == "" {
		e.Message = fallbackMessage(e.Kind, status)
	}

	if e.Kind == domain.KindRateLimit && header != nil {
		e.RetryAfter = ParseRetryAfter(header.Get(HeaderRetryAfter), now)
	}

	return e
}

// messageFrom picks the human-readable message out of an error body.
// The API uses "message", "detail" (string or a list of field errors)
// or "error" (string or object).
func messageFrom(body map[string]any) string {
	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg
	}

	switch detail := body["detail"].(type) {
	case string:
		if detail != "" {
			return detail
		}
	case []any:
		if msg := joinDetails(detail); msg != "" {
			return msg
		}
	}

	switch v := body["error"].(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return ""
}

// joinDetails flattens a list of {"loc": [...], "msg": "..."} entries.
func joinDetails(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		msg, _ := m["msg"].(string)
		if msg == "" {
			continue
		}
		if loc, ok := m["loc"].([]any); ok && len(loc) > 0 {
			if field, ok := loc[len(loc)-1].(string); ok {
				msg = field + ": " + msg
			}
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func fallbackMessage(kind domain.ErrorKind, status int) string {
	switch kind {
	case domain.KindAuthentication:
		return "invalid API key"
	case domain.KindInsufficientCredits:
		return "insufficient credits"
	case domain.KindNotFound:
		return "not found"
	case domain.KindRateLimit:
		return "rate limit exceeded"
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToLower(text)
	}
	return fmt.Sprintf("unexpected status %d", status)
}
