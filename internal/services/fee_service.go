package services

import (
	"fmt"
	"math/big"

	"launchpad-backend/internal/config"
	"launchpad-backend/internal/utils"
)

// FeeQuote breaks the deployment fee into its components. The wei fields are
// exact; the unsuffixed fields carry the same amounts in native-token units
// for display.
type FeeQuote struct {
	BaseFee     *big.Int `json:"-"`
	DisableFee  *big.Int `json:"-"`
	Total       *big.Int `json:"-"`
	BaseFeeWei  string   `json:"base_fee_wei"`
	ExtraFeeWei string   `json:"extra_fee_wei"`
	TotalWei    string   `json:"total_wei"`
	BaseFeeEth  string   `json:"base_fee"`
	ExtraFeeEth string   `json:"extra_fee"`
	TotalEth    string   `json:"total"`
}

// FeeService computes deployment fees from static policy
type FeeService struct {
	baseFee        *big.Int
	disableMintFee *big.Int
}

// NewFeeService parses the configured fee amounts
func NewFeeService(cfg *config.FeeConfig) (*FeeService, error) {
	baseFee, ok := new(big.Int).SetString(cfg.BaseFeeWei, 10)
	if !ok || baseFee.Sign() < 0 {
		return nil, fmt.Errorf("invalid base fee %q", cfg.BaseFeeWei)
	}
	disableMintFee, ok := new(big.Int).SetString(cfg.DisableMintFeeWei, 10)
	if !ok || disableMintFee.Sign() < 0 {
		return nil, fmt.Errorf("invalid disable-mint fee %q", cfg.DisableMintFeeWei)
	}
	return &FeeService{baseFee: baseFee, disableMintFee: disableMintFee}, nil
}

// Quote returns the fee for a submission. Disabling minting at creation time
// costs extra on top of the base fee. Every call returns fresh values so
// callers cannot mutate shared state.
func (s *FeeService) Quote(disableMinting bool) *FeeQuote {
	base := new(big.Int).Set(s.baseFee)
	extra := big.NewInt(0)
	if disableMinting {
		extra = new(big.Int).Set(s.disableMintFee)
	}
	total := new(big.Int).Add(base, extra)

	return &FeeQuote{
		BaseFee:     base,
		DisableFee:  extra,
		Total:       total,
		BaseFeeWei:  base.String(),
		ExtraFeeWei: extra.String(),
		TotalWei:    total.String(),
		BaseFeeEth:  utils.FormatUnits(base, 18),
		ExtraFeeEth: utils.FormatUnits(extra, 18),
		TotalEth:    utils.FormatUnits(total, 18),
	}
}
