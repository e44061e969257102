package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pulselabs/trendpulse/internal/alerting"
	"github.com/pulselabs/trendpulse/internal/contracts"
	"github.com/pulselabs/trendpulse/pkg/logger"
)

// AlertHandler triggers alert dispatches on demand
type AlertHandler struct {
	dispatcher *alerting.Dispatcher
	logger     *logger.Logger
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(dispatcher *alerting.Dispatcher, log *logger.Logger) *AlertHandler {
	return &AlertHandler{
		dispatcher: dispatcher,
		logger:     log,
	}
}

// AlertRequest represents a manual alert request
type AlertRequest struct {
	Ticker    string   `json:"ticker"`
	Momentum  int      `json:"momentum"`
	Sentiment float64  `json:"sentiment"`
	Signal    string   `json:"signal,omitempty"`   // optional, overrides classification
	Channels  []string `json:"channels,omitempty"` // optional, defaults to all configured
	Source    string   `json:"source,omitempty"`
}

// AlertResponse reports the dispatch outcome
type AlertResponse struct {
	Sent     bool             `json:"sent"`
	Reason   string           `json:"reason,omitempty"`
	Signal   contracts.Signal `json:"signal,omitempty"`
	Channels map[string]bool  `json:"channels,omitempty"`
}

// SendAlert evaluates an alert request and dispatches notifications
// POST /api/alert
func (h *AlertHandler) SendAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if req.Momentum < 0 || req.Momentum > 100 {
		respondError(w, http.StatusBadRequest, "momentum must be between 0 and 100")
		return
	}

	var explicit contracts.Signal
	if req.Signal != "" {
		parsed, err := contracts.ParseSignal(req.Signal)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid signal")
			return
		}
		explicit = parsed
	}

	if err := h.dispatcher.ValidateChannels(req.Channels); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision := alerting.Decide(req.Momentum, req.Sentiment, explicit)
	if !decision.ShouldFire {
		respondJSON(w, http.StatusOK, AlertResponse{
			Sent:   false,
			Reason: "Below alert threshold",
			Signal: decision.Signal,
		})
		return
	}

	alert := alerting.Alert{
		Ticker:    contracts.NormalizeTicker(req.Ticker),
		Signal:    decision.Signal,
		Momentum:  req.Momentum,
		Sentiment: req.Sentiment,
		Source:    req.Source,
	}

	outcomes := h.dispatcher.Dispatch(ctx, alert, req.Channels)

	sent := false
	for _, ok := range outcomes {
		if ok {
			sent = true
			break
		}
	}

	resp := AlertResponse{
		Sent:     sent,
		Signal:   decision.Signal,
		Channels: outcomes,
	}
	if !sent {
		resp.Reason = "No channel delivered the alert"
	}

	respondJSON(w, http.StatusOK, resp)
}
