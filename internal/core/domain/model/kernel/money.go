package kernel

import (
	"fmt"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney, MoneyFromString or ZeroMoney")

// Money is a non-negative decimal amount. Prices and order totals are Money, so
// totals are exact sums and never accumulate binary floating point error.
//
// Example:
//
//	latte, _ := kernel.MoneyFromString("3.50")
//	muffin, _ := kernel.MoneyFromString("2.25")
//	fmt.Println(latte.Add(muffin)) // 5.75
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// ZeroMoney returns a valid zero amount, the total of an order without items.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// NewMoney wraps amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money", fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal literal such as "3.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// Validate returns ErrMoneyIsNotConstructed for a zero-value Money.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal, used by persistence DTOs.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of both amounts. The sum of two non-negative amounts is non-negative.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// IsEqual compares numerically, so 3.5 equals 3.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
