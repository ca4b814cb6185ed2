package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone    = "UTC"
	configPathEnv      = "PAGE_WATCHER_CONFIG"
	telegramTokenEnv   = "TELEGRAM_BOT_TOKEN"
	telegramChannelEnv = "TELEGRAM_CHANNEL_ID"
	cacheDirEnv        = "PAGE_WATCHER_CACHE_DIR"
	historyPathEnv     = "PAGE_WATCHER_HISTORY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Cache         CacheConfig        `yaml:"cache"`
	History       HistoryConfig      `yaml:"history"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Diff          DiffConfig         `yaml:"diff"`
	Keywords      []string           `yaml:"keywords"`
	Pages         []PageConfig       `yaml:"pages"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FetchConfig describes how pages are retrieved.
type FetchConfig struct {
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
	UserAgent      string  `yaml:"userAgent"`
	RatePerSecond  float64 `yaml:"ratePerSecond"`
}

// Timeout resolves the configured timeout, defaulting to 20 seconds.
func (f FetchConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// CacheConfig locates the snapshot directory.
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig locates the SQLite check-history file; empty disables it.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines when watch mode re-runs the check.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken  string `yaml:"botToken"`
	ChannelID string `yaml:"channelId"`
}

// DiffConfig tunes the change summarizer and the relevance gate.
type DiffConfig struct {
	MaxLines         int  `yaml:"maxLines"`
	NotifyAllChanges bool `yaml:"notifyAllChanges"`
}

// PageConfig describes a single monitored page.
type PageConfig struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	CacheFile string `yaml:"cacheFile"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
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

	if len(cfg.Pages) == 0 {
		cfg.Pages = defaultConfig().Pages
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = defaultConfig().Keywords
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChannelEnv); v != "" {
		c.Notifications.Telegram.ChannelID = v
	}

	if v := os.Getenv(cacheDirEnv); v != "" {
		c.Cache.Dir = v
	}

	if v := os.Getenv(historyPathEnv); v != "" {
		c.History.Path = v
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

	if override.Fetch.TimeoutSeconds > 0 {
		base.Fetch.TimeoutSeconds = override.Fetch.TimeoutSeconds
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}
	if override.Fetch.RatePerSecond > 0 {
		base.Fetch.RatePerSecond = override.Fetch.RatePerSecond
	}

	if override.Cache.Dir != "" {
		base.Cache = override.Cache
	}
	if override.History.Path != "" {
		base.History = override.History
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChannelID != "" {
		base.Notifications.Telegram.ChannelID = override.Notifications.Telegram.ChannelID
	}

	if override.Diff.MaxLines > 0 {
		base.Diff.MaxLines = override.Diff.MaxLines
	}
	if override.Diff.NotifyAllChanges {
		base.Diff.NotifyAllChanges = true
	}

	if len(override.Keywords) > 0 {
		base.Keywords = override.Keywords
	}
	if len(override.Pages) > 0 {
		base.Pages = override.Pages
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Fetch: FetchConfig{
			TimeoutSeconds: 20,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RatePerSecond:  1,
		},
		Cache:     CacheConfig{Dir: "cache"},
		History:   HistoryConfig{Path: ""},
		Scheduler: SchedulerConfig{CronExpression: "", Timezone: defaultTimezone, location: tz},
		Diff:      DiffConfig{MaxLines: 10, NotifyAllChanges: false},
		Keywords: []string{
			"biglietti", "biglietto",
			"prezzo", "prezzi", "costo",
			"vendita", "acquisto",
			"prenotazione", "prenotazioni",
			"disponibili", "disponibile",
			"aperto", "apertura", "chiusura",
			"orari", "orario",
			"euro", "€", "gratuito", "gratis",
			"posti", "posto", "sala",
			"cinema", "film",
			"proiezione", "proiezioni",
			"festival", "biennale", "venezia",
		},
		Pages: []PageConfig{
			{
				Name:      "Informazioni",
				URL:       "https://www.labiennale.org/it/cinema/2025/informazioni",
				CacheFile: "informazioni.txt",
			},
			{
				Name:      "labiennale.org/it",
				URL:       "https://www.labiennale.org/it",
				CacheFile: "labienalle_it.txt",
			},
			{
				Name:      "labiennale.org/it/cinema/2025",
				URL:       "https://www.labiennale.org/it/cinema/2025",
				CacheFile: "labienalle_cinema.txt",
			},
		},
	}
}
