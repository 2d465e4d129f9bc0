package notify

import (
	"fmt"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/ports"
)

// Config selects and configures the outbound channels.
type Config struct {
	Backends       []string
	TelegramToken  string
	TelegramChatID string
	SlackWebhook   string
}

// FromConfig builds a notifier from configuration. With no backends listed,
// Telegram is used when credentials are present and the terminal otherwise,
// so a bare env-configured deployment alerts without any YAML.
func FromConfig(cfg Config) (ports.Notifier, error) {
	backends := cfg.Backends
	if len(backends) == 0 {
		if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
			backends = []string{"telegram"}
		} else {
			backends = []string{"terminal"}
		}
	}

	var notifiers []ports.Notifier
	for _, backend := range backends {
		switch backend {
		case "terminal":
			notifiers = append(notifiers, NewTerminalNotifier())
		case "telegram":
			if cfg.TelegramToken == "" || cfg.TelegramChatID == "" {
				return nil, fmt.Errorf("telegram backend requires bot token and chat id")
			}
			notifiers = append(notifiers, NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID))
		case "slack":
			if cfg.SlackWebhook == "" {
				return nil, fmt.Errorf("slack backend requires webhook URL")
			}
			notifiers = append(notifiers, NewSlackNotifier(cfg.SlackWebhook))
		default:
			return nil, fmt.Errorf("unknown notification backend: %s", backend)
		}
	}

	if len(notifiers) == 1 {
		return notifiers[0], nil
	}
	return NewMulti(notifiers...), nil
}
