package webhook

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

const testSecret = "whsec_test_secret"

func eventPayload() []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_123","object":"event","api_version":%q,"type":"checkout.session.completed","data":{"object":{"id":"cs_123","object":"checkout.session"}}}`,
		stripe.APIVersion,
	))
}

func signedHeader(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()
	signature := stripewebhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(signature))
}

func TestVerify_ValidSignature(t *testing.T) {
	verifier := NewVerifier(testSecret)
	payload := eventPayload()
	header := signedHeader(t, payload, testSecret, time.Now())

	event, err := verifier.Verify(payload, header)

	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, stripe.EventTypeCheckoutSessionCompleted, event.Type)
}

func TestVerify_TamperedPayload(t *testing.T) {
	verifier := NewVerifier(testSecret)
	payload := eventPayload()
	header := signedHeader(t, payload, testSecret, time.Now())

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'x'

	_, err := verifier.Verify(tampered, header)

	assert.True(t, errors.Is(err, domain.ErrInvalidSignature))
}

func TestVerify_WrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)
	payload := eventPayload()
	header := signedHeader(t, payload, "whsec_other_secret", time.Now())

	_, err := verifier.Verify(payload, header)

	assert.True(t, errors.Is(err, domain.ErrInvalidSignature))
}

func TestVerify_StaleTimestamp(t *testing.T) {
	verifier := NewVerifier(testSecret)
	payload := eventPayload()
	header := signedHeader(t, payload, testSecret, time.Now().Add(-DefaultTolerance-time.Minute))

	_, err := verifier.Verify(payload, header)

	assert.True(t, errors.Is(err, domain.ErrInvalidSignature))
}

func TestVerify_GarbageHeader(t *testing.T) {
	verifier := NewVerifier(testSecret)

	_, err := verifier.Verify(eventPayload(), "not-a-signature-header")

	assert.True(t, errors.Is(err, domain.ErrInvalidSignature))
}
