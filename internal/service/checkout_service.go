package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
	"github.com/otaviooaugusto13-cyber/edu/internal/gateway"
)

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, request *domain.CheckoutRequest) (*domain.CheckoutSession, error)
}

type CheckoutServiceImpl struct {
	gateway  gateway.SessionCreator
	validate *validator.Validate
}

func NewCheckoutService(gw gateway.SessionCreator) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		gateway:  gw,
		validate: validator.New(),
	}
}

// InitiateCheckout asks Stripe for a new subscription session and returns
// the redirect URL. Nothing is written locally; a failed or timed-out call
// leaves no partial state, so the client can retry freely.
func (s *CheckoutServiceImpl) InitiateCheckout(
	ctx context.Context,
	request *domain.CheckoutRequest) (*domain.CheckoutSession, error) {

	if err := s.validate.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	session, err := s.gateway.CreateSubscriptionSession(ctx, request.Email, request.Name)
	if err != nil {
		return nil, err
	}

	return session, nil
}
