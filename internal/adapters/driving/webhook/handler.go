// Package webhook receives the completion notifications Surmado POSTs to a
// submission's webhook_url.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/logger"
)

// MaxBodyBytes caps the accepted payload size.
const MaxBodyBytes = 1 << 20

// EventFunc is called once per accepted webhook event.
type EventFunc func(ctx context.Context, event *domain.WebhookEvent) error

// Handler returns an http.Handler that decodes webhook POSTs and passes
// each event to fn. Malformed payloads get 400 and fn errors get 500, so
// the sender can retry.
func Handler(fn EventFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, `{"error":"method not allowed"}`)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, `{"error":"payload too large"}`)
				return
			}
			writeJSON(w, http.StatusBadRequest, `{"error":"unreadable body"}`)
			return
		}

		event, err := domain.ParseWebhookEvent(body)
		if err != nil {
			logger.Warn("rejected webhook: %v", err)
			writeJSON(w, http.StatusBadRequest, fmt.Sprintf(`{"error":%q}`, err.Error()))
			return
		}

		logger.Debug("Webhook %s for %s", event.Event, event.Report.ID)

		if fn != nil {
			if err := fn(r.Context(), event); err != nil {
				logger.Warn("webhook handler failed for %s: %v", event.Report.ID, err)
				writeJSON(w, http.StatusInternalServerError, `{"error":"handler failed"}`)
				return
			}
		}

		writeJSON(w, http.StatusOK, `{"received":true}`)
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
