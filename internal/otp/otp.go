// Package otp derives time-based one-time codes from an entry's secret.
package otp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrNoSecret means the entry carries no OTP secret attribute.
var ErrNoSecret = errors.New("entry has no OTP secret")

// Code computes the one-time code for a secret at the given time. The secret
// is either a raw base32 seed (case and inner spaces are tolerated) or a
// full otpauth:// URL carrying its own period, digits and algorithm.
func Code(secret string, now time.Time) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", ErrNoSecret
	}

	if strings.HasPrefix(secret, "otpauth://") {
		key, err := otp.NewKeyFromURL(secret)
		if err != nil {
			return "", fmt.Errorf("parse otpauth url: %w", err)
		}
		code, err := totp.GenerateCodeCustom(key.Secret(), now, totp.ValidateOpts{
			Period:    uint(key.Period()),
			Digits:    key.Digits(),
			Algorithm: key.Algorithm(),
		})
		if err != nil {
			return "", fmt.Errorf("compute code: %w", err)
		}
		return code, nil
	}

	code, err := totp.GenerateCode(strings.ReplaceAll(secret, " ", ""), now)
	if err != nil {
		return "", fmt.Errorf("compute code: %w", err)
	}
	return code, nil
}
