package user

import (
	"context"
	"errors"

	"github.com/easykanban/easykanban/internal/auth"
	"github.com/easykanban/easykanban/internal/dal"
)

// AuthAdapter adapts a user Repository to the auth.AccountLookup interface.
type AuthAdapter struct {
	repo Repository
}

// NewAuthAdapter creates a new AuthAdapter wrapping the given repository.
func NewAuthAdapter(repo Repository) *AuthAdapter {
	return &AuthAdapter{repo: repo}
}

// AccountByEmail returns the account for email, or nil if none exists.
func (a *AuthAdapter) AccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	u, err := a.repo.GetByEmail(ctx, email)
	if errors.Is(err, dal.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.Account{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}, nil
}
