package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/pkg/config"
	"github.com/pulselabs/trendpulse/pkg/httputil"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

func TestEmailSend(t *testing.T) {
	var received resendPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer re_test_key" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	cfg := config.AlertsConfig{
		ResendAPIKey:  "re_test_key",
		ResendBaseURL: srv.URL,
		AlertEmail:    "trader@example.com",
		FromEmail:     "TrendPulse <alerts@resend.dev>",
	}

	log := logger.NewNop()
	notifier := NewEmailNotifier(cfg, httputil.New(log).DisableRetry(), log)

	err := notifier.Send(context.Background(), Alert{
		Ticker:    "$BTC",
		Signal:    contracts.SignalSell,
		Momentum:  20,
		Sentiment: -0.4,
		Source:    "twitter",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(received.To) != 1 || received.To[0] != "trader@example.com" {
		t.Errorf("unexpected recipients: %v", received.To)
	}
	if !strings.Contains(received.Subject, "SELL") || !strings.Contains(received.Subject, "$BTC") {
		t.Errorf("unexpected subject: %q", received.Subject)
	}
	if !strings.Contains(received.HTML, "-40%") {
		t.Errorf("expected sentiment in body, got: %s", received.HTML)
	}
	if !strings.Contains(received.HTML, "Twitter") {
		t.Errorf("expected capitalized source in body")
	}
}

func TestEmailConfigured(t *testing.T) {
	log := logger.NewNop()

	tests := []struct {
		name string
		cfg  config.AlertsConfig
		want bool
	}{
		{"both set", config.AlertsConfig{ResendAPIKey: "k", AlertEmail: "a@b.c"}, true},
		{"missing key", config.AlertsConfig{AlertEmail: "a@b.c"}, false},
		{"missing recipient", config.AlertsConfig{ResendAPIKey: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := NewEmailNotifier(tt.cfg, httputil.New(log), log)
			if got := notifier.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}
