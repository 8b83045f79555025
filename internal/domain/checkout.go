package domain

// CheckoutRequest is the caller-supplied payload for starting a purchase.
// The email is embedded in the session metadata so the webhook can be
// correlated back to a user.
type CheckoutRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// CheckoutSession references the gateway-owned session. Nothing about it is
// persisted locally; Stripe remains the source of truth until the webhook
// arrives.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
