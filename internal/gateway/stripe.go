package gateway

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

// MetadataEmailKey is the session metadata key carrying the buyer's email.
// It is set at checkout time and read back from the webhook event, which is
// how an asynchronous "session completed" notification finds its user.
const MetadataEmailKey = "user_email"

// SessionCreator is what the checkout service needs from Stripe.
type SessionCreator interface {
	CreateSubscriptionSession(ctx context.Context, email, name string) (*domain.CheckoutSession, error)
}

// StripeGateway creates subscription checkout sessions. All calls go through
// a circuit breaker so a degraded Stripe API fails fast instead of tying up
// request handlers for the full upstream timeout.
type StripeGateway struct {
	api        *client.API
	priceID    string
	successURL string
	cancelURL  string
	breaker    *gobreaker.CircuitBreaker[*stripe.CheckoutSession]
}

func NewStripeGateway(secretKey, priceID, successURL, cancelURL string) *StripeGateway {
	breaker := gobreaker.NewCircuitBreaker[*stripe.CheckoutSession](gobreaker.Settings{
		Name: "stripe-checkout-sessions",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &StripeGateway{
		api:        client.New(secretKey, nil),
		priceID:    priceID,
		successURL: successURL,
		cancelURL:  cancelURL,
		breaker:    breaker,
	}
}

func (g *StripeGateway) CreateSubscriptionSession(ctx context.Context, email, name string) (*domain.CheckoutSession, error) {
	if g.priceID == "" {
		return nil, domain.ErrPriceNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Params:        stripe.Params{Context: ctx},
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(g.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.AddMetadata(MetadataEmailKey, email)
	params.AddMetadata("user_name", name)

	session, err := g.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return g.api.CheckoutSessions.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", domain.ErrGateway, err)
	}

	return &domain.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
