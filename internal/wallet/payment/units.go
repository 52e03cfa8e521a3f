package payment

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// ParseUnits converts a decimal amount such as "1.5" into base units of a token
// with the given decimals. More fractional digits than decimals is an error.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" && frac == "" {
		return nil, errors.Wrap(ErrInvalidAmount, "empty amount")
	}
	if len(frac) > int(decimals) {
		return nil, errors.Wrapf(ErrInvalidAmount, "more than %d fractional digits", decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil, errors.Wrapf(ErrInvalidAmount, "%q is not a decimal number", value)
		}
	}

	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is not a decimal number", value)
	}
	return amount, nil
}

// FormatUnits renders base units as a decimal string without trailing zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	negative := amount.Sign() < 0
	digits := new(big.Int).Abs(amount).String()

	if d := int(decimals); d > 0 {
		if len(digits) <= d {
			digits = strings.Repeat("0", d-len(digits)+1) + digits
		}
		whole, frac := digits[:len(digits)-d], strings.TrimRight(digits[len(digits)-d:], "0")
		digits = whole
		if frac != "" {
			digits += "." + frac
		}
	}

	if negative {
		return "-" + digits
	}
	return digits
}
