package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	defaultInterval   = 30 * time.Minute
	defaultTopN       = 3
	defaultStatePath  = "data/state.json"
	defaultTrackedPth = "data/tracked.json"

	configPathEnv     = "HACKWATCH_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	redisAddrEnv      = "REDIS_ADDR"
	redisPasswordEnv  = "REDIS_PASSWORD"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	slackWebhookEnv   = "SLACK_WEBHOOK_URL"
	devpostUserEnv    = "DEVPOST_USERNAME"
	topNEnv           = "TOP_N_HACKATHONS"
	dryRunEnv         = "DRY_RUN"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Urgency       UrgencyConfig      `yaml:"urgency"`
	History       HistoryConfig      `yaml:"history"`
	Notifications NotificationConfig `yaml:"notifications"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Sources       []SourceConfig     `yaml:"sources"`
	DryRun        bool               `yaml:"dryRun"`
}

// LoggingConfig selects the slog level by name.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines how often watch mode re-runs the pipeline.
type SchedulerConfig struct {
	Every    string         `yaml:"every"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Interval parses the "every" duration string, falling back to the default
// cadence when the value is missing or malformed.
func (s SchedulerConfig) Interval() time.Duration {
	if s.Every == "" {
		return defaultInterval
	}
	d, err := time.ParseDuration(s.Every)
	if err != nil || d <= 0 {
		log.Printf("config: invalid scheduler interval %q, using %s", s.Every, defaultInterval)
		return defaultInterval
	}
	return d
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// UrgencyConfig tunes the ranking stage.
type UrgencyConfig struct {
	TopN int `yaml:"topN"`
}

// HistoryConfig selects and configures the notification-history store.
type HistoryConfig struct {
	Backend string      `yaml:"backend"` // file, postgres, or redis
	Path    string      `yaml:"path"`
	DSN     string      `yaml:"dsn"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig describes the Redis history backend connection.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NotificationConfig encapsulates outbound alert channels.
type NotificationConfig struct {
	Backends []string       `yaml:"backends"`
	Telegram TelegramConfig `yaml:"telegram"`
	Slack    SlackConfig    `yaml:"slack"`
}

// TelegramConfig wires all data required to send bot messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SlackConfig holds the incoming-webhook endpoint.
type SlackConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// MetricsConfig enables the Prometheus listener in watch mode. An empty
// address disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// SourceConfig describes a single hackathon source with its scraper strategy.
type SourceConfig struct {
	Name    string            `yaml:"name"`
	Scraper string            `yaml:"scraper"`
	Options map[string]string `yaml:"options"`
}

// TrackedPath returns the file backing the first tracked source, falling
// back to the default when none is configured. Manual additions land here.
func (c Config) TrackedPath() string {
	for _, src := range c.Sources {
		if src.Scraper == "tracked" && src.Options["path"] != "" {
			return src.Options["path"]
		}
	}
	return defaultTrackedPth
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.History.DSN = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.History.Redis.Addr = v
	}
	if v := os.Getenv(redisPasswordEnv); v != "" {
		c.History.Redis.Password = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
	if v := os.Getenv(slackWebhookEnv); v != "" {
		c.Notifications.Slack.WebhookURL = v
	}

	if v := os.Getenv(devpostUserEnv); v != "" {
		c.setDevpostUsername(v)
	}

	if v := os.Getenv(topNEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Urgency.TopN = n
		} else {
			log.Printf("config: ignoring invalid %s=%q", topNEnv, v)
		}
	}

	if v := os.Getenv(dryRunEnv); v != "" {
		c.DryRun = strings.EqualFold(strings.TrimSpace(v), "true")
	}
}

// setDevpostUsername pushes the env-provided username into every configured
// devpost source so env-only deployments need no YAML file at all.
func (c *Config) setDevpostUsername(username string) {
	for i := range c.Sources {
		if c.Sources[i].Scraper != "devpost" {
			continue
		}
		if c.Sources[i].Options == nil {
			c.Sources[i].Options = map[string]string{}
		}
		c.Sources[i].Options["username"] = username
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scheduler.Every != "" {
		base.Scheduler.Every = override.Scheduler.Every
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Urgency.TopN > 0 {
		base.Urgency.TopN = override.Urgency.TopN
	}

	if override.History.Backend != "" {
		base.History.Backend = override.History.Backend
	}
	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}
	if override.History.DSN != "" {
		base.History.DSN = override.History.DSN
	}
	if override.History.Redis.Addr != "" {
		base.History.Redis = override.History.Redis
	}

	if len(override.Notifications.Backends) > 0 {
		base.Notifications.Backends = override.Notifications.Backends
	}
	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Notifications.Slack.WebhookURL != "" {
		base.Notifications.Slack.WebhookURL = override.Notifications.Slack.WebhookURL
	}

	if override.Metrics.Addr != "" {
		base.Metrics = override.Metrics
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if override.DryRun {
		base.DryRun = true
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{Every: "30m", Timezone: defaultTimezone, location: tz},
		Urgency:   UrgencyConfig{TopN: defaultTopN},
		History: HistoryConfig{
			Backend: "file",
			Path:    defaultStatePath,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Sources: []SourceConfig{
			{
				Name:    "devpost",
				Scraper: "devpost",
				Options: map[string]string{"username": ""},
			},
			{
				Name:    "tracked",
				Scraper: "tracked",
				Options: map[string]string{"path": defaultTrackedPth},
			},
		},
	}
}
