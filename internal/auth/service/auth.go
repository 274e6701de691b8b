package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/internal/auth/store"
	"github.com/aussiebroadwan/authapp/pkg/cryptox"
	"github.com/aussiebroadwan/authapp/pkg/ratelimit"
	"github.com/aussiebroadwan/authapp/pkg/slogx"
	"github.com/aussiebroadwan/authapp/pkg/totpx"
)

// Rate limit actions. Counters are kept per client and action.
const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionLogin2FA = "login2fa"
)

// Limits holds the per-action fixed-window thresholds.
type Limits struct {
	Register ratelimit.Rule
	Login    ratelimit.Rule
	Login2FA ratelimit.Rule
}

// DefaultLimits allows 5 registrations and 10 of each login flavour per
// client per minute.
func DefaultLimits() Limits {
	return NewLimits(5, 10, 10, time.Minute)
}

func NewLimits(register, login, login2FA int, window time.Duration) Limits {
	return Limits{
		Register: ratelimit.Rule{Action: ActionRegister, Max: register, Window: window},
		Login:    ratelimit.Rule{Action: ActionLogin, Max: login, Window: window},
		Login2FA: ratelimit.Rule{Action: ActionLogin2FA, Max: login2FA, Window: window},
	}
}

// LoginResult is either a session (Token and User set) or a request for the
// second factor.
type LoginResult struct {
	RequiresTOTP bool
	Token        string
	User         domain.User
}

// AuthService runs every account action: rate check, input validation,
// credential and second-factor checks, persistence and token issuance.
type AuthService struct {
	Store   store.Store
	Hasher  *cryptox.PasswordHasher
	TOTP    *totpx.Engine
	Tokens  *TokenService
	Limiter ratelimit.Limiter
	Limits  Limits

	// Now stamps last_login. Nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CheckRate records one attempt at rule's action for client and returns
// ErrRateLimited once the window's budget is spent. Register, Login and
// LoginWithTOTP call it themselves; handlers only need it for requests that
// never reach those methods.
func (s *AuthService) CheckRate(ctx context.Context, rule ratelimit.Rule, client string) error {
	exceeded, err := rule.Exceeded(ctx, s.Limiter, client)
	if err != nil {
		return fmt.Errorf("rate limit %s: %w", rule.Action, err)
	}
	if exceeded {
		slogx.FromContext(ctx).Warn("rate limit hit", slog.String("action", rule.Action), slog.String("client", client))
		return ErrRateLimited
	}
	return nil
}

// Register creates an account and returns its id. Duplicate emails and
// insert failures look the same to the caller.
func (s *AuthService) Register(ctx context.Context, client, email, password string) (int64, error) {
	l := slogx.FromContext(ctx)

	if err := s.CheckRate(ctx, s.Limits.Register, client); err != nil {
		return 0, err
	}

	if !ValidEmail(email) || !ValidPassword(password) {
		return 0, ErrInvalidRegistration
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.Store.Users().CreateUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("registration rejected: email taken")
		} else {
			l.Error("register error", slog.Any("err", err))
		}
		return 0, ErrRegistrationFailed
	}

	l.Info("user registered", slog.Int64("user_id", id))
	return id, nil
}

// authenticate checks the email/password pair. Unknown users, wrong
// passwords and malformed input are indistinguishable to the caller.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if !ValidEmail(email) || !ValidPassword(password) {
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}

	ok, err := s.Hasher.Verify(password, u.PasswordHash)
	if err != nil {
		slogx.FromContext(ctx).Error("stored password hash unreadable",
			slog.Int64("user_id", u.ID), slog.Any("err", err))
		return domain.User{}, ErrInvalidCredentials
	}
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// startSession stamps last_login and issues a token.
func (s *AuthService) startSession(ctx context.Context, u domain.User) (LoginResult, error) {
	now := s.now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, u.ID, now); err != nil {
		return LoginResult{}, fmt.Errorf("update last login: %w", err)
	}
	u.LastLogin = &now

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: u}, nil
}

// Login verifies a password. Users with 2FA enabled get RequiresTOTP and no
// token; they must call LoginWithTOTP.
func (s *AuthService) Login(ctx context.Context, client, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	if err := s.CheckRate(ctx, s.Limits.Login, client); err != nil {
		return LoginResult{}, err
	}

	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	if u.TOTPEnabled {
		l.Info("login requires 2FA", slog.Int64("user_id", u.ID))
		return LoginResult{RequiresTOTP: true}, nil
	}

	res, err := s.startSession(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("user logged in", slog.Int64("user_id", u.ID))
	return res, nil
}

// LoginWithTOTP verifies the password and the current TOTP code in one step.
func (s *AuthService) LoginWithTOTP(ctx context.Context, client, email, password, code string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	if err := s.CheckRate(ctx, s.Limits.Login2FA, client); err != nil {
		return LoginResult{}, err
	}

	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	if !u.TOTPEnabled || u.TOTPSecret == nil {
		return LoginResult{}, ErrTOTPNotEnabled
	}

	if !s.TOTP.Verify(*u.TOTPSecret, code) {
		l.Info("2FA code rejected", slog.Int64("user_id", u.ID))
		return LoginResult{}, ErrInvalidTOTPCode
	}

	res, err := s.startSession(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("user logged in with 2FA", slog.Int64("user_id", u.ID))
	return res, nil
}

// SetupTOTP generates and stores a new pending secret. The enabled flag is
// not touched, so calling it while 2FA is on swaps the secret in place.
func (s *AuthService) SetupTOTP(ctx context.Context, id domain.Identity) (totpx.Enrollment, error) {
	enr, err := s.TOTP.GenerateSecret(id.Email)
	if err != nil {
		return totpx.Enrollment{}, fmt.Errorf("generate totp secret: %w", err)
	}

	if err := s.Store.Users().SetTOTPSecret(ctx, id.ID, enr.Secret); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return totpx.Enrollment{}, ErrUserNotFound
		}
		return totpx.Enrollment{}, fmt.Errorf("store totp secret: %w", err)
	}

	slogx.FromContext(ctx).Info("2FA setup started", slog.Int64("user_id", id.ID))
	return enr, nil
}

// VerifyTOTP confirms the stored secret with a code and turns 2FA on. The
// read and the conditional enable share one transaction so a concurrent
// disable cannot leave 2FA enabled without a secret.
func (s *AuthService) VerifyTOTP(ctx context.Context, id domain.Identity, code string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoPendingSetup
			}
			return fmt.Errorf("load user: %w", err)
		}

		if u.TOTPSecret == nil {
			return ErrNoPendingSetup
		}

		if !s.TOTP.Verify(*u.TOTPSecret, code) {
			return ErrInvalidVerificationCode
		}

		// Re-verifying an enabled secret succeeds without a write.
		if !u.HasPendingTOTP() {
			return nil
		}

		if err := tx.Users().EnableTOTP(ctx, id.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoPendingSetup
			}
			return fmt.Errorf("enable totp: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("2FA enabled", slog.Int64("user_id", id.ID))
	return nil
}

// DisableTOTP clears both the enabled flag and the secret.
func (s *AuthService) DisableTOTP(ctx context.Context, id domain.Identity) error {
	if err := s.Store.Users().DisableTOTP(ctx, id.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("disable totp: %w", err)
	}

	slogx.FromContext(ctx).Info("2FA disabled", slog.Int64("user_id", id.ID))
	return nil
}

// CurrentUser reloads the caller from the store. A token can outlive its
// user, in which case this returns ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, id domain.Identity) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
