package domain

import "errors"

var (
	// ErrInvalidRequest means the caller-supplied payload failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPriceNotConfigured means STRIPE_PRICE_ID is missing. This is a
	// deployment defect, reported per-request instead of crashing at boot
	// so the static page keeps serving.
	ErrPriceNotConfigured = errors.New("price id not configured")

	// ErrGateway means the call to Stripe failed or timed out. No local
	// state is created, so the client may simply retry.
	ErrGateway = errors.New("payment gateway error")

	// ErrInvalidSignature means the webhook payload could not be
	// authenticated against the signing secret, or its timestamp fell
	// outside the tolerance window. Terminal for the request.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedEvent means a verified payload could not be decoded.
	ErrMalformedEvent = errors.New("malformed webhook event")

	// ErrAlreadyProcessed means the event id has a completed ledger entry.
	ErrAlreadyProcessed = errors.New("event already processed")

	// ErrEventInFlight means a concurrent delivery of the same event holds
	// the ledger reservation. The gateway should redeliver later.
	ErrEventInFlight = errors.New("event is being processed")

	// ErrUserNotFound means the webhook references an email with no
	// matching user row.
	ErrUserNotFound = errors.New("user not found")

	// ErrStoreUnavailable means a transient storage failure. Surfaced as a
	// server error so the gateway redelivers the event.
	ErrStoreUnavailable = errors.New("store unavailable")
)
