package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/otaviooaugusto13-cyber/edu/internal/domain"
)

// GrantEntitlement activates the subscription for the user with the given
// email. Re-applying the grant is harmless: the status stays active and the
// original activation time is kept.
func (r *Repository) GrantEntitlement(ctx context.Context, email string) (*domain.Entitlement, error) {
	query := `UPDATE users
	          SET subscription_status = $2,
	              activated_at = COALESCE(activated_at, NOW())
	          WHERE email = $1
	          RETURNING email, subscription_status, activated_at`

	var entitlement domain.Entitlement
	var activatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, email, domain.SubscriptionActive).
		Scan(&entitlement.Email, &entitlement.Status, &activatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: grant entitlement: %v", domain.ErrStoreUnavailable, err)
	}

	entitlement.ActivatedAt = &activatedAt
	return &entitlement, nil
}

// GetEntitlement reads the current subscription state for a user.
func (r *Repository) GetEntitlement(ctx context.Context, email string) (*domain.Entitlement, error) {
	query := `SELECT email, subscription_status, activated_at
	          FROM users WHERE email = $1`

	var entitlement domain.Entitlement
	var activatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&entitlement.Email, &entitlement.Status, &activatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: get entitlement: %v", domain.ErrStoreUnavailable, err)
	}

	if activatedAt.Valid {
		entitlement.ActivatedAt = &activatedAt.Time
	}
	return &entitlement, nil
}
