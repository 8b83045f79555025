package webhook

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

// DefaultTolerance bounds the replay window: events whose signed timestamp
// is older than this are rejected even with a valid signature.
const DefaultTolerance = 5 * time.Minute

// Verifier authenticates inbound webhook payloads. It must be fed the exact
// bytes Stripe sent; any re-serialization of the body invalidates the
// signature.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret, tolerance: DefaultTolerance}
}

// Verify recomputes the signature over payload, compares it in constant time
// against the Stripe-Signature header and checks the timestamp skew. On
// success the decoded event can be trusted.
func (v *Verifier) Verify(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := stripewebhook.ConstructEventWithTolerance(payload, sigHeader, v.secret, v.tolerance)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	return event, nil
}
