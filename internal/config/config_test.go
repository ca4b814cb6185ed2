package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{configPathEnv, telegramTokenEnv, telegramChannelEnv, cacheDirEnv, historyPathEnv} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if len(cfg.Pages) != 3 {
		t.Fatalf("expected 3 default pages, got %d", len(cfg.Pages))
	}
	if cfg.Pages[0].Name != "Informazioni" || cfg.Pages[0].CacheFile != "informazioni.txt" {
		t.Fatalf("unexpected first page: %+v", cfg.Pages[0])
	}
	if len(cfg.Keywords) < 20 {
		t.Fatalf("default vocabulary too small: %d", len(cfg.Keywords))
	}
	if cfg.Diff.MaxLines != 10 {
		t.Fatalf("expected maxLines 10, got %d", cfg.Diff.MaxLines)
	}
	if cfg.Diff.NotifyAllChanges {
		t.Fatal("keyword gating should be on by default")
	}
	if cfg.Fetch.Timeout() != 20*time.Second {
		t.Fatalf("expected 20s timeout, got %v", cfg.Fetch.Timeout())
	}
	if cfg.Cache.Dir != "cache" {
		t.Fatalf("unexpected cache dir: %s", cfg.Cache.Dir)
	}
	if cfg.History.Path != "" {
		t.Fatal("history should be disabled by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(telegramTokenEnv, "env-token")
	t.Setenv(telegramChannelEnv, "@env-channel")
	t.Setenv(cacheDirEnv, "/tmp/watch-cache")
	t.Setenv(historyPathEnv, "/tmp/history.db")

	cfg := Load()

	if cfg.Notifications.Telegram.BotToken != "env-token" {
		t.Fatalf("token override ignored: %q", cfg.Notifications.Telegram.BotToken)
	}
	if cfg.Notifications.Telegram.ChannelID != "@env-channel" {
		t.Fatalf("channel override ignored: %q", cfg.Notifications.Telegram.ChannelID)
	}
	if cfg.Cache.Dir != "/tmp/watch-cache" {
		t.Fatalf("cache dir override ignored: %q", cfg.Cache.Dir)
	}
	if cfg.History.Path != "/tmp/history.db" {
		t.Fatalf("history override ignored: %q", cfg.History.Path)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	if _, err := time.LoadLocation("Europe/Rome"); err != nil {
		t.Skip("tzdata unavailable")
	}

	raw := `
logging:
  level: debug
fetch:
  timeoutSeconds: 5
diff:
  maxLines: 4
  notifyAllChanges: true
scheduler:
  cronExpression: "0 */6 * * *"
  timezone: Europe/Rome
pages:
  - name: Test
    url: https://example.org/test
    cacheFile: test.txt
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("level not merged: %s", cfg.Logging.Level)
	}
	if cfg.Fetch.Timeout() != 5*time.Second {
		t.Fatalf("timeout not merged: %v", cfg.Fetch.Timeout())
	}
	if cfg.Diff.MaxLines != 4 || !cfg.Diff.NotifyAllChanges {
		t.Fatalf("diff settings not merged: %+v", cfg.Diff)
	}
	if cfg.Scheduler.CronExpression != "0 */6 * * *" {
		t.Fatalf("cron not merged: %s", cfg.Scheduler.CronExpression)
	}
	if cfg.Scheduler.Location().String() != "Europe/Rome" {
		t.Fatalf("timezone not bound: %s", cfg.Scheduler.Location())
	}
	if len(cfg.Pages) != 1 || cfg.Pages[0].Name != "Test" {
		t.Fatalf("pages not replaced: %+v", cfg.Pages)
	}
	// Keywords were not set in the file, so defaults survive.
	if len(cfg.Keywords) < 20 {
		t.Fatalf("default keywords lost: %d", len(cfg.Keywords))
	}
	// User agent was not set either.
	if cfg.Fetch.UserAgent == "" {
		t.Fatal("default user agent lost")
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	clearEnv(t)

	raw := `
notifications:
  telegram:
    botToken: file-token
    channelId: "@file-channel"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(telegramTokenEnv, "env-token")

	cfg := Load()

	if cfg.Notifications.Telegram.BotToken != "env-token" {
		t.Fatalf("env should beat file: %q", cfg.Notifications.Telegram.BotToken)
	}
	if cfg.Notifications.Telegram.ChannelID != "@file-channel" {
		t.Fatalf("file value should survive when env unset: %q", cfg.Notifications.Telegram.ChannelID)
	}
}
