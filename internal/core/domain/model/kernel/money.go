package kernel

import (
	"fmt"

	"campusfood/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code all amounts in the system are denominated in.
// The campus marketplace operates in a single currency.
const Currency = "NGN"

// Money is a value object for monetary amounts. It wraps a decimal so that
// totals survive arithmetic without floating-point drift; amounts are naira
// with kobo precision (two decimal places).
//
// The zero value is a valid ₦0.00 amount. Negative amounts are rejected at
// construction, so any Money in circulation is non-negative.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(2)}, nil
}

// NewMoneyFromString parses a decimal string such as "1200" or "1200.50".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a ₦0.00 amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulQuantity returns the amount multiplied by an item quantity.
func (m Money) MulQuantity(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with kobo precision, e.g. "2500.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
