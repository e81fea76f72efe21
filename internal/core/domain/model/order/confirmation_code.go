package order

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"campusfood/internal/pkg/errs"
)

// ConfirmationCode is the one-time code a customer reads back to the rider
// to confirm delivery. Generated when a rider claims the order.
type ConfirmationCode string

// confirmationCodeSpace is the number of possible 6-digit codes.
var confirmationCodeSpace = big.NewInt(1000000)

// NewConfirmationCode generates a uniformly random 6-digit numeric code
// from the platform CSPRNG. Leading zeros are preserved.
func NewConfirmationCode() (ConfirmationCode, error) {
	n, err := rand.Int(rand.Reader, confirmationCodeSpace)
	if err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return ConfirmationCode(fmt.Sprintf("%06d", n.Int64())), nil
}

// ConfirmationCodeFromString validates a persisted code.
func ConfirmationCodeFromString(s string) (ConfirmationCode, error) {
	code := ConfirmationCode(s)
	if err := code.Validate(); err != nil {
		return "", err
	}
	return code, nil
}

// Validate checks the code is exactly six decimal digits.
func (c ConfirmationCode) Validate() error {
	if len(c) != 6 {
		return errs.NewValueIsInvalidErrorWithCause("confirmationCode", fmt.Errorf("%q is not 6 digits", string(c)))
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("confirmationCode", fmt.Errorf("%q contains a non-digit", string(c)))
		}
	}
	return nil
}

// String returns the code digits.
func (c ConfirmationCode) String() string {
	return string(c)
}
