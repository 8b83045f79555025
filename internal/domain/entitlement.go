package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)

// Entitlement is a user's subscription access. It is only ever written by
// the entitlement store in response to a verified, not-yet-processed event;
// revocation is handled elsewhere.
type Entitlement struct {
	Email       string             `json:"email"`
	Status      SubscriptionStatus `json:"status"`
	ActivatedAt *time.Time         `json:"activated_at,omitempty"`
}
