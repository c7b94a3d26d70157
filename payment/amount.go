// Package payment implements the payment-request pipeline: Ether amount
// conversion to wei, address validation, and payment URI construction.
package payment

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// WeiDecimals is the number of decimal places between Ether and wei:
// 1 ETH = 10^18 wei.
const WeiDecimals = 18

// weiPerEther is 10^18 as a big integer.
var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(WeiDecimals), nil)

// amountPattern matches an unsigned decimal number with an optional single
// fractional part. A lone "." does not match.
var amountPattern = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

// ToWei converts a decimal Ether amount entered by the user into its exact
// integer wei representation, returned as a decimal string. The conversion
// never touches floating point: the whole and fractional parts are combined
// with math/big so the 18th decimal place is exact.
//
// Returns a *ValidationError when the input is empty, malformed, carries
// more than 18 fractional digits, or converts to a value <= 0.
func ToWei(raw string) (string, error) {
	amount := strings.TrimSpace(raw)
	if amount == "" {
		return "", invalid("amount", "amount is required")
	}
	if !amountPattern.MatchString(amount) {
		return "", invalid("amount", "not a valid number")
	}

	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > WeiDecimals {
		return "", invalid("amount", "too many decimal places")
	}

	// Pad the fractional part to exactly 18 digits. The slice bound is a
	// no-op after the length check above but keeps the invariant local.
	frac = (frac + strings.Repeat("0", WeiDecimals))[:WeiDecimals]

	wholeInt, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return "", invalid("amount", "not a valid number")
	}
	fracInt, ok := new(big.Int).SetString(frac, 10)
	if !ok {
		return "", invalid("amount", "not a valid number")
	}

	total := new(big.Int).Add(new(big.Int).Mul(wholeInt, weiPerEther), fracInt)
	if total.Sign() <= 0 {
		return "", invalid("amount", "must be greater than zero")
	}

	return total.String(), nil
}

// FromWei renders an integer wei string as an Ether decimal string. Display
// only; the result never feeds back into arithmetic.
func FromWei(wei string) (string, error) {
	d, err := decimal.NewFromString(wei)
	if err != nil {
		return "", fmt.Errorf("parse wei value %q: %w", wei, err)
	}
	return d.Shift(-WeiDecimals).String(), nil
}
