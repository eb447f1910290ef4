package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// WebhookEventType is the kind of webhook notification.
type WebhookEventType string

// Webhook events. Only terminal states are delivered.
const (
	EventReportCompleted WebhookEventType = "report.completed"
	EventReportFailed    WebhookEventType = "report.failed"
)

// WebhookEvent is the POST body the service sends to a submission's webhook_url.
// The client never produces it; consumers decode it on their own endpoint.
type WebhookEvent struct {
	Event     WebhookEventType `json:"event"`
	Timestamp string           `json:"timestamp"`
	Report    WebhookReport    `json:"report"`
}

// WebhookReport mirrors Report inside a webhook event.
type WebhookReport struct {
	ID              string         `json:"id"`
	Token           string         `json:"token,omitempty"`
	Product         Product        `json:"product"`
	Status          Status         `json:"status"`
	Tier            Tier           `json:"tier,omitempty"`
	DataURL         string         `json:"data_url,omitempty"`
	PDFURL          string         `json:"pdf_url,omitempty"`
	CreditsRefunded int            `json:"credits_refunded"`
	FailureReason   string         `json:"failure_reason,omitempty"`
	Summary         map[string]any `json:"summary,omitempty"`
}

// ParseWebhookEvent decodes and checks a webhook body.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

// Validate checks the event kind and report id.
func (e *WebhookEvent) Validate() error {
	switch e.Event {
	case EventReportCompleted, EventReportFailed:
	default:
		return NewValidationError("event", fmt.Sprintf("unknown webhook event %q", e.Event))
	}
	if e.Report.ID == "" {
		return FieldRequired("report.id")
	}
	return nil
}

// Succeeded returns true for report.completed events.
func (e *WebhookEvent) Succeeded() bool {
	return e.Event == EventReportCompleted
}

// Time parses Timestamp as RFC 3339.
func (e *WebhookEvent) Time() (time.Time, bool) {
	return parseTimestamp(e.Timestamp)
}
