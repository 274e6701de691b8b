package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/pkg/jwtx"
	"github.com/aussiebroadwan/authapp/pkg/slogx"
)

// TokenService issues and validates stateless session tokens. Validation is
// purely cryptographic: a token for a deleted user stays valid until it
// expires.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	// Now is the issuing clock. Nil means time.Now.
	Now func() time.Time
}

// NewTokenService builds an HS256 token service around one shared secret.
func NewTokenService(secret []byte, issuer string) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, issuer)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   issuer,
		TTL:      jwtx.SessionTokenTTL,
	}, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue signs a session token for u.
func (s *TokenService) Issue(u domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.SessionTokenTTL
	}

	claims := jwtx.NewSessionClaims(u.ID, u.Email, s.Issuer, ttl, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Validate returns the identity in token. Every failure is ErrInvalidToken.
func (s *TokenService) Validate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", "err", err)
		return domain.Identity{}, ErrInvalidToken
	}
	return domain.Identity{ID: claims.UserID, Email: claims.Email}, nil
}
