package impl

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// otpRange yields 6-digit passcodes in [100000, 999999].
var otpRange = big.NewInt(900000)

// generateOTP draws a 6-digit one-time passcode from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate OTP")
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateResetToken draws a 32-byte random token, hex encoded.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate reset token")
	}

	return hex.EncodeToString(buf), nil
}
