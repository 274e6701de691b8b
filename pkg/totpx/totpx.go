// Package totpx wraps github.com/pquerna/otp with the fixed parameters used
// for second-factor enrollment: SHA1, 6 digits, 30 second steps.
package totpx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Period is the TOTP time step.
	Period = 30 * time.Second

	// DefaultSkew accepts codes one step either side of the current one.
	DefaultSkew = 1

	qrSize = 200
)

// Enrollment is a freshly generated secret plus its provisioning artifacts.
type Enrollment struct {
	Secret string // base32, unpadded
	URL    string // otpauth://totp/... provisioning URI
	QRCode string // data:image/png;base64,... rendering of URL
}

// Engine generates and checks TOTP codes.
type Engine struct {
	Issuer string
	Skew   uint

	// Now is the engine's clock. Nil means time.Now.
	Now func() time.Time
}

// NewEngine returns an engine for issuer with the default ±1 step tolerance.
func NewEngine(issuer string) *Engine {
	return &Engine{Issuer: issuer, Skew: DefaultSkew}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(Period / time.Second),
		Skew:      e.Skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// GenerateSecret creates a random secret labelled with account under the
// engine's issuer.
func (e *Engine) GenerateSecret(account string) (Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.Issuer,
		AccountName: account,
		Period:      uint(Period / time.Second),
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("totpx: generate key: %w", err)
	}

	qr, err := qrDataURL(key)
	if err != nil {
		return Enrollment{}, err
	}

	return Enrollment{
		Secret: key.Secret(),
		URL:    key.URL(),
		QRCode: qr,
	}, nil
}

// CurrentCode returns the code for secret at the engine's current time.
func (e *Engine) CurrentCode(secret string) (string, error) {
	return e.CodeAt(secret, e.now())
}

// CodeAt returns the code for secret at t.
func (e *Engine) CodeAt(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, t, e.opts())
	if err != nil {
		return "", fmt.Errorf("totpx: generate code: %w", err)
	}
	return code, nil
}

// Verify reports whether code matches secret for the current step or any
// step within ±Skew. Malformed secrets and codes never verify.
func (e *Engine) Verify(secret, code string) bool {
	if secret == "" || code == "" {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, e.now(), e.opts())
	if err != nil {
		return false
	}
	return ok
}

func qrDataURL(key *otp.Key) (string, error) {
	img, err := key.Image(qrSize, qrSize)
	if err != nil {
		return "", fmt.Errorf("totpx: render qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("totpx: encode qr: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
