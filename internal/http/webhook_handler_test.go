package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

type dispatcherMock struct {
	err error

	gotPayload []byte
	gotSig     string
}

func (m *dispatcherMock) Dispatch(_ context.Context, payload []byte, sigHeader string) error {
	m.gotPayload = payload
	m.gotSig = sigHeader
	return m.err
}

func newWebhookRequest(body string) *http.Request {
	request := httptest.NewRequest("POST", "/webhook", bytes.NewBufferString(body))
	request.Header.Set("Stripe-Signature", "t=1,v1=abc")
	return request
}

func TestReceive_Acknowledged(t *testing.T) {
	mock := &dispatcherMock{}
	handler := NewWebhookHandler(mock, 5*time.Second, 1<<20, zerolog.Nop())

	recorder := httptest.NewRecorder()
	handler.Receive(recorder, newWebhookRequest(`{"id":"evt_1"}`))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response map[string]bool
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response["received"] {
		t.Error("Expected received: true")
	}
}

func TestReceive_PassesRawBodyAndHeader(t *testing.T) {
	mock := &dispatcherMock{}
	handler := NewWebhookHandler(mock, 5*time.Second, 1<<20, zerolog.Nop())

	body := `{"id":"evt_1",  "spacing":   "matters for signatures"}`
	recorder := httptest.NewRecorder()
	handler.Receive(recorder, newWebhookRequest(body))

	if string(mock.gotPayload) != body {
		t.Errorf("Payload was altered before dispatch: %q", mock.gotPayload)
	}
	if mock.gotSig != "t=1,v1=abc" {
		t.Errorf("Unexpected signature header: %q", mock.gotSig)
	}
}

func TestReceive_InvalidSignature(t *testing.T) {
	mock := &dispatcherMock{err: domain.ErrInvalidSignature}
	handler := NewWebhookHandler(mock, 5*time.Second, 1<<20, zerolog.Nop())

	recorder := httptest.NewRecorder()
	handler.Receive(recorder, newWebhookRequest(`{"id":"evt_1"}`))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if !strings.HasPrefix(recorder.Body.String(), "Webhook Error:") {
		t.Errorf("Expected Webhook Error body, got %q", recorder.Body.String())
	}
}

func TestReceive_StoreFailure(t *testing.T) {
	mock := &dispatcherMock{err: domain.ErrStoreUnavailable}
	handler := NewWebhookHandler(mock, 5*time.Second, 1<<20, zerolog.Nop())

	recorder := httptest.NewRecorder()
	handler.Receive(recorder, newWebhookRequest(`{"id":"evt_1"}`))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
}

func TestReceive_EventInFlight(t *testing.T) {
	mock := &dispatcherMock{err: domain.ErrEventInFlight}
	handler := NewWebhookHandler(mock, 5*time.Second, 1<<20, zerolog.Nop())

	recorder := httptest.NewRecorder()
	handler.Receive(recorder, newWebhookRequest(`{"id":"evt_1"}`))

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}
}

func TestReceive_NoDispatcherConfigured(t *testing.T) {
	handler := NewWebhookHandler(nil, 5*time.Second, 1<<20, zerolog.Nop())

	recorder := httptest.NewRecorder()
	handler.Receive(recorder, newWebhookRequest(`{"id":"evt_1"}`))

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, recorder.Code)
	}
}
