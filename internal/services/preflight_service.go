package services

import (
	"context"
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"launchpad-backend/internal/metrics"
	"launchpad-backend/internal/utils"
)

// ChainReader is the read-only chain access the preflight needs
type ChainReader interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
}

// PreflightResult summarizes the affordability check before signing
type PreflightResult struct {
	GasPrice      *big.Int
	GasPriceKnown bool
	EstimatedGas  *big.Int
	RequiredWei   *big.Int
	AvailableWei  *big.Int
}

// PreflightService checks that an account can afford fee plus gas before a
// transaction is signed
type PreflightService struct {
	reader   ChainReader
	gasLimit uint64
}

func NewPreflightService(reader ChainReader, gasLimit uint64) *PreflightService {
	return &PreflightService{reader: reader, gasLimit: gasLimit}
}

// Check verifies account balance against fee plus worst-case gas cost.
// A failed gas price query does not block the submission: the check proceeds
// with a zero gas component and the node prices the transaction at broadcast.
func (s *PreflightService) Check(ctx context.Context, account common.Address, feeTotal *big.Int) (*PreflightResult, error) {
	gasPrice := big.NewInt(0)
	gasPriceKnown := true
	if suggested, err := s.reader.SuggestGasPrice(ctx); err != nil {
		gasPriceKnown = false
		metrics.GasPriceUnavailable.Inc()
		log.Printf("⚠️ Gas price unavailable, preflight proceeds without gas estimate: %v", err)
	} else {
		gasPrice = suggested
	}

	gasCost := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(s.gasLimit))
	required := new(big.Int).Add(feeTotal, gasCost)

	balance, err := s.reader.BalanceAt(ctx, account)
	if err != nil {
		return nil, &PreflightError{
			Detail: fmt.Sprintf("failed to query balance of %s: %v", account.Hex(), err),
		}
	}

	if balance.Cmp(required) < 0 {
		metrics.InsufficientBalance.Inc()
		return nil, &PreflightError{
			Insufficient: true,
			Required:     utils.FormatUnits(required, 18),
			Available:    utils.FormatUnits(balance, 18),
			FeeWei:       feeTotal.String(),
		}
	}

	return &PreflightResult{
		GasPrice:      gasPrice,
		GasPriceKnown: gasPriceKnown,
		EstimatedGas:  gasCost,
		RequiredWei:   required,
		AvailableWei:  balance,
	}, nil
}
