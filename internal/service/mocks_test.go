package service

import (
	"context"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

// MockLedger implements Ledger for testing, recording every call.
type MockLedger struct {
	ReserveErr  error
	GrantErr    error
	CompleteErr error
	ReleaseErr  error

	Reserved  []string
	Granted   []string
	Completed []string
	Released  []string
}

func (m *MockLedger) ReserveEvent(_ context.Context, eventID, _ string) error {
	m.Reserved = append(m.Reserved, eventID)
	return m.ReserveErr
}

func (m *MockLedger) CompleteEvent(_ context.Context, eventID string) error {
	m.Completed = append(m.Completed, eventID)
	return m.CompleteErr
}

func (m *MockLedger) ReleaseEvent(_ context.Context, eventID string) error {
	m.Released = append(m.Released, eventID)
	return m.ReleaseErr
}

func (m *MockLedger) GrantEntitlement(_ context.Context, email string) (*domain.Entitlement, error) {
	m.Granted = append(m.Granted, email)
	if m.GrantErr != nil {
		return nil, m.GrantErr
	}
	return &domain.Entitlement{Email: email, Status: domain.SubscriptionActive}, nil
}

// MockGateway implements gateway.SessionCreator for testing.
type MockGateway struct {
	Session *domain.CheckoutSession
	Err     error

	GotEmail string
	GotName  string
}

func (m *MockGateway) CreateSubscriptionSession(_ context.Context, email, name string) (*domain.CheckoutSession, error) {
	m.GotEmail = email
	m.GotName = name
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}
