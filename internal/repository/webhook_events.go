package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

const (
	eventStatusProcessing = "processing"
	eventStatusCompleted  = "completed"
)

// ReserveEvent atomically records intent to process an event. The primary
// key on event_id is the serialization point for concurrent deliveries of
// the same event: exactly one delivery gets the reservation.
//
// Returns nil when the reservation is fresh, domain.ErrAlreadyProcessed when
// a completed entry exists, and domain.ErrEventInFlight when another
// delivery currently holds the reservation.
func (r *Repository) ReserveEvent(ctx context.Context, eventID, eventType string) error {
	query := `INSERT INTO webhook_events (event_id, event_type, status, received_at)
	          VALUES ($1, $2, $3, NOW())
	          ON CONFLICT (event_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, eventID, eventType, eventStatusProcessing)
	if err != nil {
		return fmt.Errorf("%w: reserve event: %v", domain.ErrStoreUnavailable, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: reserve event: %v", domain.ErrStoreUnavailable, err)
	}
	if inserted == 1 {
		return nil
	}

	var status string
	err = r.db.QueryRowContext(ctx,
		`SELECT status FROM webhook_events WHERE event_id = $1`, eventID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The conflicting row was released between our insert and this
			// read; let the gateway redeliver rather than racing for it.
			return domain.ErrEventInFlight
		}
		return fmt.Errorf("%w: read event status: %v", domain.ErrStoreUnavailable, err)
	}

	if status == eventStatusCompleted {
		return domain.ErrAlreadyProcessed
	}
	return domain.ErrEventInFlight
}

// CompleteEvent marks a reserved event as processed.
func (r *Repository) CompleteEvent(ctx context.Context, eventID string) error {
	query := `UPDATE webhook_events
	          SET status = $2, completed_at = NOW()
	          WHERE event_id = $1`

	if _, err := r.db.ExecContext(ctx, query, eventID, eventStatusCompleted); err != nil {
		return fmt.Errorf("%w: complete event: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ReleaseEvent drops a reservation whose effect could not be applied, so a
// later redelivery can succeed. Completed entries are never released.
func (r *Repository) ReleaseEvent(ctx context.Context, eventID string) error {
	query := `DELETE FROM webhook_events WHERE event_id = $1 AND status = $2`

	if _, err := r.db.ExecContext(ctx, query, eventID, eventStatusProcessing); err != nil {
		return fmt.Errorf("%w: release event: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
