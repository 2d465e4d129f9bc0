package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram throttles bots that post too quickly, so consecutive sends keep
// this gap.
const telegramSendGap = 2 * time.Second

// TelegramNotifier sends alerts to a chat via the Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	apiBase  string
	sendGap  time.Duration
	client   *http.Client

	mu       sync.Mutex
	lastSend time.Time
}

var _ ports.Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier registers bot token and chat identifier.
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  telegramAPIBase,
		sendGap:  telegramSendGap,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the channel for logs and config.
func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// Notify renders the alert and posts it as a Markdown message.
func (n *TelegramNotifier) Notify(ctx context.Context, alert domain.ScoredHackathon) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	if err := n.throttle(ctx); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", Message(alert))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// throttle holds the caller until the rate-limit gap since the previous send
// has passed. Concurrent callers queue up on the mutex.
func (n *TelegramNotifier) throttle(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.lastSend.IsZero() {
		if wait := n.sendGap - time.Since(n.lastSend); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	n.lastSend = time.Now()
	return nil
}
