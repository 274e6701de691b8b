package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string     // argon2id PHC string, never serialised
	TOTPSecret   *string    // base32; set while 2FA is pending or enabled
	TOTPEnabled  bool       // implies TOTPSecret != nil
	LastLogin    *time.Time // nil until the first successful login
	CreatedAt    time.Time
}

// HasPendingTOTP reports whether a secret has been generated but not yet
// confirmed.
func (u User) HasPendingTOTP() bool {
	return u.TOTPSecret != nil && !u.TOTPEnabled
}

// Identity is the authenticated caller as carried by a session token.
type Identity struct {
	ID    int64
	Email string
}
