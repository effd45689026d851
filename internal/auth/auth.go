// Package auth issues and verifies bearer tokens and authenticates accounts
// by email and password.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easykanban/easykanban/internal/apperr"
)

// TokenTTL is the lifetime of an issued token.
const TokenTTL = 10 * time.Minute

// Account is the subset of a user needed to authenticate.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
}

// AccountLookup resolves accounts by email. A missing account is (nil, nil).
type AccountLookup interface {
	AccountByEmail(ctx context.Context, email string) (*Account, error)
}

// MetricsRecorder is an optional interface for recording auth outcomes.
type MetricsRecorder interface {
	IncAuthFailure(reason string)
	IncAuthSuccess(authType string)
}

// Service authenticates credentials and authorizes bearer headers.
type Service struct {
	accounts AccountLookup
	codec    *Codec
	hasher   *PasswordHasher
	ttl      time.Duration
	metrics  MetricsRecorder
}

// NewService creates a new authentication service. A non-positive ttl falls
// back to TokenTTL.
func NewService(accounts AccountLookup, codec *Codec, hasher *PasswordHasher, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &Service{accounts: accounts, codec: codec, hasher: hasher, ttl: ttl}
}

// SetMetrics sets the optional metrics recorder.
func (s *Service) SetMetrics(m MetricsRecorder) {
	s.metrics = m
}

// Authenticate checks email and password and returns a signed token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.AccountByEmail(ctx, email)
	if err != nil {
		return "", apperr.Storage(fmt.Errorf("looking up account: %w", err))
	}
	if account == nil {
		s.recordFailure("account_not_found")
		return "", apperr.AccountNotFound()
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		s.recordFailure("incorrect_password")
		return "", apperr.IncorrectPassword()
	}

	now := s.codec.Now()
	token, err := s.codec.Issue(Claims{
		SubjectID: account.ID,
		Email:     account.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.IncAuthSuccess("password")
	}
	return token, nil
}

// Authorize extracts the token from a "Bearer <token>" header value and
// verifies it. Signature and expiry failures are both reported as
// InvalidAuthenticatedUser.
func (s *Service) Authorize(header string) (*Claims, error) {
	token := extractToken(header)
	if token == "" {
		s.recordFailure("missing_token")
		return nil, apperr.Unauthorized("Unauthorized user")
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		reason := "invalid_signature"
		if errors.Is(err, ErrExpired) {
			reason = "expired"
		}
		slog.Debug("token verification failed", "reason", reason, "error", err)
		s.recordFailure(reason)
		return nil, apperr.InvalidAuthenticatedUser(err)
	}
	return &claims, nil
}

func (s *Service) recordFailure(reason string) {
	if s.metrics != nil {
		s.metrics.IncAuthFailure(reason)
	}
}

// extractToken returns the second space-separated segment of header.
func extractToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
