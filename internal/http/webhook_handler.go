package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

// EventDispatcher processes one raw webhook delivery.
type EventDispatcher interface {
	Dispatch(ctx context.Context, payload []byte, sigHeader string) error
}

// WebhookHandler receives Stripe callbacks. The body is read as raw bytes
// and handed to the verifier untouched; this route must never sit behind
// anything that parses or rewrites request bodies, or signature checks
// break.
type WebhookHandler struct {
	dispatcher EventDispatcher
	timeout    time.Duration
	maxBody    int64
	logger     zerolog.Logger
}

func NewWebhookHandler(dispatcher EventDispatcher, timeout time.Duration, maxBody int64, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		timeout:    timeout,
		maxBody:    maxBody,
		logger:     logger,
	}
}

// POST /webhook
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if h.dispatcher == nil {
		// Running without a database; webhooks cannot be applied.
		h.logger.Error().Msg("webhook received but no store is configured")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Webhook Error: failed to read body", http.StatusBadRequest)
		return
	}

	err = h.dispatcher.Dispatch(ctx, payload, r.Header.Get("Stripe-Signature"))
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]bool{"received": true})
	case errors.Is(err, domain.ErrInvalidSignature):
		http.Error(w, "Webhook Error: invalid signature", http.StatusBadRequest)
	case errors.Is(err, domain.ErrMalformedEvent):
		http.Error(w, "Webhook Error: malformed event", http.StatusBadRequest)
	case errors.Is(err, domain.ErrEventInFlight):
		// Another delivery of this event is mid-processing; a non-2xx
		// makes Stripe redeliver once it has resolved.
		h.logger.Warn().Str("request_id", getRequestID(r.Context())).Msg("duplicate delivery in flight")
		w.WriteHeader(http.StatusConflict)
	default:
		h.logger.Error().Str("request_id", getRequestID(r.Context())).Err(err).Msg("webhook processing failed")
		w.WriteHeader(http.StatusInternalServerError)
	}
}
