package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PageWatcher/internal/ports"
)

// Notifier posts messages to a Telegram chat via the bot sendMessage API.
type Notifier struct {
	botToken  string
	channelID string
	baseURL   string
	client    *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and channel identifier.
func NewNotifier(botToken, channelID string) *Notifier {
	return &Notifier{
		botToken:  botToken,
		channelID: channelID,
		baseURL:   "https://api.telegram.org",
		client:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Send posts an HTML-formatted message to the configured channel.
// Missing credentials are a configuration error surfaced here, so callers
// can log it without the process failing.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.botToken == "" || n.channelID == "" {
		return fmt.Errorf("telegram notifier misconfigured: bot token or channel id missing")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.channelID)
	form.Set("text", message)
	form.Set("parse_mode", "HTML")

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
