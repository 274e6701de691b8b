package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenTTL is the fixed lifetime of a session token.
const SessionTokenTTL = 7 * 24 * time.Hour

// Claims are the session-token claims. The numeric user id is carried both as
// the registered "sub" claim (decimal string) and as "id" for clients that
// decode the payload directly.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64  `json:"id"`
	Email  string `json:"email"`
}

// NewSessionClaims builds claims for userID/email valid from now until now+ttl.
func NewSessionClaims(userID int64, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Email:  email,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateSubject ensures "sub" and "id" agree and name a real user id.
func (c *Claims) ValidateSubject() error {
	if c.UserID <= 0 || c.Subject != strconv.FormatInt(c.UserID, 10) {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the token has not expired (exp) and is not used
// before nbf, relative to now. A token is expired once now reaches exp.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
