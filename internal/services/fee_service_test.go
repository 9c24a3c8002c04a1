package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad-backend/internal/config"
)

func newTestFeeService(t *testing.T) *FeeService {
	t.Helper()
	svc, err := NewFeeService(&config.FeeConfig{
		BaseFeeWei:        "5000000000000000000",
		DisableMintFeeWei: "5000000000000000000",
	})
	require.NoError(t, err)
	return svc
}

func TestFeeQuoteBase(t *testing.T) {
	quote := newTestFeeService(t).Quote(false)
	assert.Equal(t, "5000000000000000000", quote.BaseFeeWei)
	assert.Equal(t, "0", quote.ExtraFeeWei)
	assert.Equal(t, "5000000000000000000", quote.TotalWei)
}

func TestFeeQuoteWithDisableMinting(t *testing.T) {
	quote := newTestFeeService(t).Quote(true)
	assert.Equal(t, "5000000000000000000", quote.ExtraFeeWei)
	assert.Equal(t, "10000000000000000000", quote.TotalWei)
	assert.Equal(t, "10", quote.TotalEth)
}

func TestFeeQuoteReturnsFreshValues(t *testing.T) {
	svc := newTestFeeService(t)
	first := svc.Quote(true)
	first.Total.SetInt64(0)

	second := svc.Quote(true)
	assert.Equal(t, "10000000000000000000", second.Total.String())
}

func TestNewFeeServiceRejectsBadAmounts(t *testing.T) {
	_, err := NewFeeService(&config.FeeConfig{BaseFeeWei: "abc", DisableMintFeeWei: "0"})
	require.Error(t, err)

	_, err = NewFeeService(&config.FeeConfig{BaseFeeWei: "1", DisableMintFeeWei: "-5"})
	require.Error(t, err)
}
