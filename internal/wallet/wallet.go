// Package wallet abstracts transaction signing so the submission pipeline
// works the same against a server-held key or an external signer.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrSignatureRejected is returned by a Wallet when the owner declines to
// sign. Callers treat it as a cancellation, not a failure.
var ErrSignatureRejected = errors.New("wallet: signature request rejected")

// Wallet signs transactions for a single account.
type Wallet interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// PrivateKeyWallet signs with an in-memory ECDSA key.
type PrivateKeyWallet struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewPrivateKeyWallet parses a hex-encoded private key. A 0x prefix is
// accepted and stripped.
func NewPrivateKeyWallet(hexKey string) (*PrivateKeyWallet, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, fmt.Errorf("private key is empty")
	}

	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &PrivateKeyWallet{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

func (w *PrivateKeyWallet) Address() common.Address {
	return w.address
}

// SignTx signs with the EIP-155 signer for the given chain.
func (w *PrivateKeyWallet) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), w.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
