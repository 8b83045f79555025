package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

func TestCreateSubscriptionSession_PriceNotConfigured(t *testing.T) {
	gw := NewStripeGateway("sk_test_key", "", "https://example.com/ok", "https://example.com/")

	session, err := gw.CreateSubscriptionSession(context.Background(), "alice@example.com", "Alice")

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domain.ErrPriceNotConfigured))
}
