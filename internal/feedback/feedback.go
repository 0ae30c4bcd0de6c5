// Package feedback posts user reports to a configured webhook. Delivery is
// fire-and-forget from the journal's perspective; nothing here touches the
// record store.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hansollee/matzip/internal/constants"
)

// Valid report types.
const (
	TypeBug     = "bug"
	TypeFeature = "feature"
	TypeOther   = "other"
)

const defaultTimeout = 15 * time.Second

// Report is the payload accepted by the webhook.
type Report struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Email     string `json:"email,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Validate checks the report before it leaves the process.
func (r Report) Validate() error {
	switch r.Type {
	case TypeBug, TypeFeature, TypeOther:
	default:
		return fmt.Errorf("feedback type must be one of bug, feature, other")
	}

	n := len([]rune(r.Message))
	if n == 0 {
		return fmt.Errorf("feedback message is required")
	}
	if n > constants.FeedbackMessageMaxLen {
		return fmt.Errorf("feedback message must be at most %d characters", constants.FeedbackMessageMaxLen)
	}
	return nil
}

// Relay delivers reports to one webhook URL.
type Relay struct {
	webhookURL string
	http       *http.Client
}

func NewRelay(webhookURL string) *Relay {
	return &Relay{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: defaultTimeout},
	}
}

// Send validates and posts the report. Any non-2xx response is a failure.
func (r *Relay) Send(ctx context.Context, report Report) error {
	if r.webhookURL == "" {
		return fmt.Errorf("no feedback webhook configured")
	}
	if err := report.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("feedback webhook returned status %d", resp.StatusCode)
	}
	return nil
}
