package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec verification errors.
var (
	ErrSignature = errors.New("token signature is invalid")
	ErrExpired   = errors.New("token has expired")
)

var signingMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Claims is the decoded payload of a bearer token.
type Claims struct {
	SubjectID int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire form: {"id", "email", "iat", "exp"}.
type tokenClaims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HMAC-signed tokens.
type Codec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithClock replaces the wall clock used for expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a codec for the given secret and algorithm name
// (HS256, HS384 or HS512).
func NewCodec(secret, algorithm string, opts ...CodecOption) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}
	c := &Codec{secret: []byte(secret), method: method, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Now returns the codec's current time.
func (c *Codec) Now() time.Time {
	return c.now()
}

// Issue signs claims. The caller sets ExpiresAt.
func (c *Codec) Issue(claims Claims) (string, error) {
	tc := tokenClaims{
		ID:    claims.SubjectID,
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(c.method, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and then expiry. A malformed token or an
// unexpected algorithm is reported as ErrSignature.
func (c *Codec) Verify(token string) (Claims, error) {
	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	claims := Claims{SubjectID: tc.ID, Email: tc.Email}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
