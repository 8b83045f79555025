package http

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// DBCheckHandler backs the connectivity smoke test. The database is
// optional: without DATABASE_URL the endpoint reports a warning instead of
// failing, and the rest of the site keeps working.
type DBCheckHandler struct {
	store   Pinger
	timeout time.Duration
	logger  zerolog.Logger
}

func NewDBCheckHandler(store Pinger, timeout time.Duration, logger zerolog.Logger) *DBCheckHandler {
	return &DBCheckHandler{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

type dbCheckResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// GET /api/db-check
func (h *DBCheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondJSON(w, http.StatusServiceUnavailable, dbCheckResponse{
			Status:  "warning",
			Message: "database unavailable (DATABASE_URL not set)",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("database ping failed")
		respondJSON(w, http.StatusInternalServerError, dbCheckResponse{
			Status:  "error",
			Message: "database connection failed",
		})
		return
	}

	respondJSON(w, http.StatusOK, dbCheckResponse{
		Status:    "success",
		Message:   "database connection OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
