package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/pkg/config"
	"github.com/pulselabs/trendpulse/pkg/httputil"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// EmailNotifier delivers alerts via the Resend email API
type EmailNotifier struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.AlertsConfig
}

// NewEmailNotifier creates a Resend email notifier
func NewEmailNotifier(cfg config.AlertsConfig, httpClient *httputil.Client, log *logger.Logger) *EmailNotifier {
	return &EmailNotifier{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// resendPayload is the Resend /emails request body
type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Name identifies the channel
func (n *EmailNotifier) Name() string {
	return "email"
}

// Configured reports whether an API key and recipient are set
func (n *EmailNotifier) Configured() bool {
	return n.cfg.ResendAPIKey != "" && n.cfg.AlertEmail != ""
}

// Send delivers the alert as an HTML email
func (n *EmailNotifier) Send(ctx context.Context, alert Alert) error {
	if !n.Configured() {
		return fmt.Errorf("resend API key or recipient not configured")
	}

	payload := resendPayload{
		From:    n.cfg.FromEmail,
		To:      []string{n.cfg.AlertEmail},
		Subject: fmt.Sprintf("🚨 %s: %s (Momentum %d)", alert.Signal, alert.Ticker, alert.Momentum),
		HTML:    renderAlertHTML(alert),
	}

	req, err := buildResendRequest(ctx, n.cfg, payload)
	if err != nil {
		return err
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}

	n.logger.WithFields(map[string]interface{}{
		"ticker": alert.Ticker,
		"signal": alert.Signal,
		"to":     n.cfg.AlertEmail,
	}).Info("Email alert delivered")

	return nil
}

// buildResendRequest creates the authorized POST to /emails
func buildResendRequest(ctx context.Context, cfg config.AlertsConfig, payload resendPayload) (*http.Request, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.ResendBaseURL+"/emails", body)
	if err != nil {
		return nil, fmt.Errorf("create resend request failed: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// jsonBody marshals a payload into a request body reader
func jsonBody(v interface{}) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}
	return bytes.NewReader(data), nil
}

// renderAlertHTML produces the email body
func renderAlertHTML(alert Alert) string {
	headerColor := "#f59e0b"
	switch alert.Signal {
	case contracts.SignalBuy:
		headerColor = "#22c55e"
	case contracts.SignalSell:
		headerColor = "#ef4444"
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: system-ui, sans-serif; max-width: 400px; margin: 0 auto; padding: 20px;">`)
	fmt.Fprintf(&b, `<h2 style="color: %s;">%s Signal: %s</h2>`, headerColor, alert.Signal, alert.Ticker)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	fmt.Fprintf(&b, `<tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><b>Momentum</b></td><td>%d/100</td></tr>`, alert.Momentum)
	fmt.Fprintf(&b, `<tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><b>Sentiment</b></td><td>%s</td></tr>`, formatSentiment(alert.Sentiment))
	fmt.Fprintf(&b, `<tr><td style="padding: 8px 0;"><b>Source</b></td><td>%s</td></tr>`, capitalize(alert.Source))
	b.WriteString(`</table>`)
	b.WriteString(`<p style="color: #666; font-size: 12px; margin-top: 20px;">TrendPulse • Not financial advice</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

// formatSentiment renders a -1..1 score as a signed percentage
func formatSentiment(sentiment float64) string {
	pct := int(sentiment * 100)
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// capitalize upper-cases the first rune of a source label
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
