package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUnits converts a human-readable decimal quantity into the chain's
// fixed-point integer representation. The conversion is exact: the input is
// parsed as a decimal string, never through a float, because the result
// determines literal on-chain token supply.
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("amount is empty")
	}
	if decimals < 0 {
		return nil, fmt.Errorf("decimals must be non-negative, got %d", decimals)
	}
	if strings.HasPrefix(amount, "-") {
		return nil, fmt.Errorf("amount must not be negative: %s", amount)
	}

	intPart := amount
	fracPart := ""
	if idx := strings.IndexByte(amount, '.'); idx >= 0 {
		intPart = amount[:idx]
		fracPart = amount[idx+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, fmt.Errorf("invalid amount: %s", amount)
		}
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid amount: %s", amount)
	}
	if intPart == "" {
		intPart = "0"
	}

	if len(fracPart) > decimals {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}

	// Scale by padding the fractional part to the full decimal count
	padded := intPart + fracPart + strings.Repeat("0", decimals-len(fracPart))

	result, ok := new(big.Int).SetString(padded, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", amount)
	}
	return result, nil
}

// FormatUnits renders a smallest-unit integer as a human-readable decimal
// string, trimming trailing zeros. Used for balances and fees in messages
// shown to the user.
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		return "0"
	}
	if decimals <= 0 {
		return value.String()
	}

	negative := value.Sign() < 0
	abs := new(big.Int).Abs(value)

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(abs, divisor, new(big.Int))

	out := quo.String()
	if rem.Sign() != 0 {
		frac := fmt.Sprintf("%0*s", decimals, rem.String())
		frac = strings.TrimRight(frac, "0")
		out = out + "." + frac
	}
	if negative {
		out = "-" + out
	}
	return out
}
