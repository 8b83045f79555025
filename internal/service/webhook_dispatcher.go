package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
	"github.com/otaviooaugusto13-cyber/edu/internal/gateway"
)

// EventVerifier authenticates raw webhook bytes against the signing secret.
type EventVerifier interface {
	Verify(payload []byte, sigHeader string) (stripe.Event, error)
}

// Ledger is the dispatcher's view of the idempotency ledger and the
// entitlement store.
type Ledger interface {
	ReserveEvent(ctx context.Context, eventID, eventType string) error
	CompleteEvent(ctx context.Context, eventID string) error
	ReleaseEvent(ctx context.Context, eventID string) error
	GrantEntitlement(ctx context.Context, email string) (*domain.Entitlement, error)
}

// WebhookDispatcher runs each inbound gateway callback through
// verify -> parse -> reserve -> grant -> complete. Lower layers return
// errors; logging happens here.
type WebhookDispatcher struct {
	verifier EventVerifier
	store    Ledger
	logger   zerolog.Logger
}

func NewWebhookDispatcher(verifier EventVerifier, store Ledger, logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		verifier: verifier,
		store:    store,
		logger:   logger,
	}
}

// Dispatch processes one delivery. A nil return means the event should be
// acknowledged with success, whether or not an entitlement was granted; the
// gateway's retry contract only distinguishes unambiguous success from
// transient failure.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := d.verifier.Verify(payload, sigHeader)
	if err != nil {
		return err
	}

	log := d.logger.With().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Logger()

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		// Event types this service does not act on are acknowledged so
		// Stripe stops redelivering them.
		log.Debug().Msg("ignoring event type")
		return nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("%w: decode checkout session: %v", domain.ErrMalformedEvent, err)
	}

	email := buyerEmail(&session)
	if email == "" {
		log.Error().Msg("completed session carries no user email")
		return nil
	}

	if err := d.store.ReserveEvent(ctx, event.ID, string(event.Type)); err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			log.Info().Msg("duplicate delivery, already processed")
			return nil
		}
		return err
	}

	entitlement, err := d.store.GrantEntitlement(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Stripe cannot resolve this for us; retrying forever would
			// only wedge its retry queue. Acknowledge and leave a trace.
			log.Error().Str("email", email).Msg("webhook references unknown user")
			if cerr := d.store.CompleteEvent(ctx, event.ID); cerr != nil {
				log.Error().Err(cerr).Msg("failed to complete ledger entry")
			}
			return nil
		}

		// Release the reservation so the redelivery Stripe sends after
		// this server error can still apply the grant.
		if rerr := d.store.ReleaseEvent(ctx, event.ID); rerr != nil {
			log.Error().Err(rerr).Msg("failed to release ledger entry")
		}
		return err
	}

	if err := d.store.CompleteEvent(ctx, event.ID); err != nil {
		// The grant is already applied and is safe to re-apply, so the
		// event is still acknowledged.
		log.Error().Err(err).Msg("granted but failed to complete ledger entry")
		return nil
	}

	log.Info().Str("email", entitlement.Email).Msg("entitlement granted")
	return nil
}

func buyerEmail(session *stripe.CheckoutSession) string {
	if email, ok := session.Metadata[gateway.MetadataEmailKey]; ok && email != "" {
		return email
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}
	return session.CustomerEmail
}
