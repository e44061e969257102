package alerting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/pkg/httputil"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// DiscordNotifier delivers alerts to a Discord webhook as rich embeds
type DiscordNotifier struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	webhookURL string
}

// NewDiscordNotifier creates a Discord webhook notifier
func NewDiscordNotifier(webhookURL string, httpClient *httputil.Client, log *logger.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		httpClient: httpClient,
		logger:     log,
		webhookURL: webhookURL,
	}
}

// discordPayload is the webhook message body
type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title     string              `json:"title"`
	Color     int                 `json:"color"`
	Fields    []discordEmbedField `json:"fields"`
	Footer    discordEmbedFooter  `json:"footer"`
	Timestamp string              `json:"timestamp"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

// Signal display attributes for embeds
var (
	signalColors = map[contracts.Signal]int{
		contracts.SignalBuy:   0x22c55e, // green
		contracts.SignalSell:  0xef4444, // red
		contracts.SignalWatch: 0xf59e0b, // yellow
		contracts.SignalHold:  0x6b7280, // gray
	}

	signalEmojis = map[contracts.Signal]string{
		contracts.SignalBuy:   "🟢",
		contracts.SignalSell:  "🔴",
		contracts.SignalWatch: "🟡",
		contracts.SignalHold:  "⚪",
	}
)

// Name identifies the channel
func (n *DiscordNotifier) Name() string {
	return "discord"
}

// Configured reports whether a webhook URL is set
func (n *DiscordNotifier) Configured() bool {
	return n.webhookURL != ""
}

// Send posts the alert embed to the webhook. Discord answers 204 on success.
func (n *DiscordNotifier) Send(ctx context.Context, alert Alert) error {
	if !n.Configured() {
		return fmt.Errorf("discord webhook URL not configured")
	}

	color, ok := signalColors[alert.Signal]
	if !ok {
		color = 0x3b82f6
	}
	emoji, ok := signalEmojis[alert.Signal]
	if !ok {
		emoji = "📊"
	}

	payload := discordPayload{
		Embeds: []discordEmbed{{
			Title: fmt.Sprintf("%s %s Signal: %s", emoji, alert.Signal, alert.Ticker),
			Color: color,
			Fields: []discordEmbedField{
				{Name: "Momentum", Value: fmt.Sprintf("%d/100", alert.Momentum), Inline: true},
				{Name: "Sentiment", Value: formatSentiment(alert.Sentiment), Inline: true},
				{Name: "Source", Value: capitalize(alert.Source), Inline: true},
			},
			Footer:    discordEmbedFooter{Text: "TrendPulse • Not financial advice"},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}

	resp, err := n.httpClient.PostJSON(ctx, n.webhookURL, payload)
	if err != nil {
		return fmt.Errorf("discord webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	n.logger.WithFields(map[string]interface{}{
		"ticker": alert.Ticker,
		"signal": alert.Signal,
	}).Info("Discord alert delivered")

	return nil
}
