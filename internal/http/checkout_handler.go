package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
	"github.com/otaviooaugusto13-cyber/edu/internal/service"
)

type CheckoutHandler struct {
	service service.CheckoutService
	timeout time.Duration
	logger  zerolog.Logger
}

func NewCheckoutHandler(svc service.CheckoutService, timeout time.Duration, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		timeout: timeout,
		logger:  logger,
	}
}

type CheckoutResponseDTO struct {
	URL string `json:"url"`
}

// POST /checkout
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.service.InitiateCheckout(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			respondError(w, http.StatusBadRequest, "invalid_request", "email and name are required")
		case errors.Is(err, domain.ErrPriceNotConfigured):
			h.logger.Error().Str("request_id", getRequestID(r.Context())).Err(err).Msg("checkout misconfigured")
			respondError(w, http.StatusInternalServerError, "not_configured", "checkout is not configured")
		default:
			h.logger.Error().Str("request_id", getRequestID(r.Context())).Err(err).Msg("checkout session creation failed")
			respondError(w, http.StatusInternalServerError, "gateway_error", "could not start checkout, please try again")
		}
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{URL: session.URL})
}
