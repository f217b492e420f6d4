package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
)

const (
	otpMin = 100000
	otpMax = 999999

	activationTokenBytes = 32

	// MaxOTPAttempts is the number of wrong codes after which the code is
	// discarded and only the activation token can activate the account.
	MaxOTPAttempts = 5
)

// GenerateOTP returns a uniformly distributed code in [100000, 999999].
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, fmt.Errorf("generate otp: %w", err)
	}
	return int(n.Int64()) + otpMin, nil
}

// GenerateActivationToken returns 256 random bits, hex encoded.
func GenerateActivationToken() (string, error) {
	b := make([]byte, activationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate activation token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueActivation puts a freshly registered account in the not-activated
// state with a new token and code.
func IssueActivation(u *model.User) error {
	token, err := GenerateActivationToken()
	if err != nil {
		return err
	}
	otp, err := GenerateOTP()
	if err != nil {
		return err
	}
	u.ActivationToken = &token
	u.OTP = &otp
	u.OTPAttempts = 0
	return nil
}

// ActivationCredential is what the client submits to activate an account:
// either the e-mailed code or the activation token.
type ActivationCredential struct {
	Code  string
	Token string
}

// Activate validates cred against the stored activation state and, on match,
// clears it. Every failure returns ErrActivationFailed. A wrong code counts
// against the account; the MaxOTPAttempts-th one discards the code, so the
// caller must persist u even when activation fails.
func Activate(u *model.User, cred ActivationCredential) error {
	if u == nil || u.IsActivated() {
		return apperrors.ErrActivationFailed
	}

	matched := false
	switch {
	case cred.Token != "":
		matched = equalSecret(cred.Token, *u.ActivationToken)
	case cred.Code != "":
		if u.OTP != nil {
			matched = equalSecret(strings.TrimSpace(cred.Code), strconv.Itoa(*u.OTP))
			if !matched {
				recordWrongCode(u)
			}
		}
	}
	if !matched {
		return apperrors.ErrActivationFailed
	}

	u.ClearActivation()
	return nil
}

func recordWrongCode(u *model.User) {
	u.OTPAttempts++
	if u.OTPAttempts >= MaxOTPAttempts {
		u.OTP = nil
	}
}

func equalSecret(submitted, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
