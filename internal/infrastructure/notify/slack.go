package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

// SlackNotifier posts alerts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

var _ ports.Notifier = (*SlackNotifier)(nil)

// NewSlackNotifier creates a Slack notifier with a default HTTP client.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewSlackNotifierWithClient creates a Slack notifier with a custom client.
func NewSlackNotifierWithClient(webhookURL string, client *http.Client) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     client,
	}
}

// Name identifies the channel for logs and config.
func (s *SlackNotifier) Name() string {
	return "slack"
}

// Notify posts the alert as a block-formatted webhook message.
func (s *SlackNotifier) Notify(ctx context.Context, alert domain.ScoredHackathon) error {
	countdown := Countdown(alert.HoursRemaining)

	fields := []map[string]any{
		{"type": "mrkdwn", "text": fmt.Sprintf("*Tier:* %s", alert.Tier)},
		{"type": "mrkdwn", "text": fmt.Sprintf("*Remaining:* %s", countdown)},
		{"type": "mrkdwn", "text": fmt.Sprintf("*Deadline:* %s UTC", alert.Deadline.UTC().Format("2006-01-02 15:04"))},
	}
	if alert.Prize > 0 {
		fields = append(fields, map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*Prize:* $%s", formatAmount(alert.Prize)),
		})
	}

	blocks := []map[string]any{
		{
			"type": "section",
			"text": map[string]string{
				"type": "mrkdwn",
				"text": fmt.Sprintf("%s *%s* (<%s|Submit Now>)", Emoji(alert.Tier), alert.Name, alert.URL),
			},
		},
		{
			"type":     "context",
			"elements": fields,
		},
	}

	payload := map[string]any{
		"text":   fmt.Sprintf("%s [%s] %s due in %s", Emoji(alert.Tier), alert.Tier, alert.Name, countdown),
		"blocks": blocks,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("slack webhook returned %d", resp.StatusCode)
	}
	return nil
}
