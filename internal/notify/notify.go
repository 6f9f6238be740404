// Package notify posts reschedule notifications to the shop's messaging
// webhook, which fans out to SMS and email providers.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrNoWebhook is returned when no webhook URL is configured.
var ErrNoWebhook = errors.New("notification webhook not configured")

const requestTimeout = 15 * time.Second

// Reschedule describes a job move the customer should hear about.
type Reschedule struct {
	JobID        int64     `json:"job_id"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	NewStart     time.Time `json:"new_start"`
	NewEnd       time.Time `json:"new_end"`
	SendSMS      bool      `json:"send_sms"`
	SendEmail    bool      `json:"send_email"`
}

// Notifier delivers reschedule notifications.
type Notifier struct {
	url  string
	http *http.Client
}

// New builds a notifier. An empty URL yields a notifier whose Enabled()
// is false and whose sends fail with ErrNoWebhook.
func New(webhookURL string) *Notifier {
	return &Notifier{
		url:  webhookURL,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether a webhook is configured.
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

// SendReschedule posts the notification. Each call carries a fresh
// idempotency key so the webhook can drop retried deliveries.
func (n *Notifier) SendReschedule(ctx context.Context, r Reschedule) error {
	if !n.Enabled() {
		return ErrNoWebhook
	}
	if !r.SendSMS && !r.SendEmail {
		return nil
	}

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %s", resp.Status)
	}

	return nil
}
