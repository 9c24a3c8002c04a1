package utils

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits_WholeNumbers(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int
		expected string
	}{
		{"1", 18, "1000000000000000000"},
		{"1000000", 18, "1000000000000000000000000"},
		{"1000000000", 18, "1000000000000000000000000000"},
		{"1000000000000", 18, "1000000000000000000000000000000"},
		{"0", 18, "0"},
		{"42", 0, "42"},
	}

	for _, tc := range cases {
		got, err := ParseUnits(tc.amount, tc.decimals)
		require.NoError(t, err, "amount %s", tc.amount)
		assert.Equal(t, tc.expected, got.String(), "amount %s", tc.amount)
	}
}

func TestParseUnits_ExactForLargeIntegers(t *testing.T) {
	// 2^53 - 1: the largest integer a float64 could represent exactly.
	// ParseUnits must stay exact well past it.
	q := "9007199254740991"
	got, err := ParseUnits(q, 18)
	require.NoError(t, err)

	want, _ := new(big.Int).SetString(q, 10)
	want.Mul(want, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	assert.Equal(t, want.String(), got.String())
}

func TestParseUnits_Fractional(t *testing.T) {
	got, err := ParseUnits("1.5", 18)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", got.String())

	got, err = ParseUnits("0.000000000000000001", 18)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	got, err = ParseUnits(".5", 1)
	require.NoError(t, err)
	assert.Equal(t, "5", got.String())
}

func TestParseUnits_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"negative", "-1"},
		{"letters", "12a4"},
		{"double dot", "1.2.3"},
		{"lone dot", "."},
		{"too many decimals", "1.0000000000000000001"}, // 19 places with 18 decimals
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseUnits(tc.amount, 18)
			assert.Error(t, err)
		})
	}
}

func TestFormatUnits(t *testing.T) {
	wei := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("bad literal %s", s)
		}
		return v
	}

	assert.Equal(t, "5", FormatUnits(wei("5000000000000000000"), 18))
	assert.Equal(t, "1.5", FormatUnits(wei("1500000000000000000"), 18))
	assert.Equal(t, "0.000000000000000001", FormatUnits(wei("1"), 18))
	assert.Equal(t, "0", FormatUnits(big.NewInt(0), 18))
	assert.Equal(t, "-2.5", FormatUnits(wei("-2500000000000000000"), 18))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "1000000", "0.5", "123.456"} {
		parsed, err := ParseUnits(s, 18)
		require.NoError(t, err)
		formatted := FormatUnits(parsed, 18)
		assert.Equal(t, strings.TrimPrefix(s, "0"), strings.TrimPrefix(formatted, "0"))
	}
}
