package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

func TestStreamBroadcast(t *testing.T) {
	handler := NewStreamHandler(logger.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(handler.Stream))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Wait for registration
	deadline := time.Now().Add(2 * time.Second)
	for handler.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	want := &contracts.RankedResult{
		Trends: []contracts.TickerRecord{
			{Ticker: "$BTC", Source: contracts.SourceTrend, Momentum: 65},
		},
		Updated: time.Now().UTC(),
	}
	handler.Broadcast(want)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var got contracts.RankedResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Trends) != 1 || got.Trends[0].Ticker != "$BTC" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestStreamClientCleanup(t *testing.T) {
	handler := NewStreamHandler(logger.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(handler.Stream))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for handler.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for handler.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never cleaned up")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
