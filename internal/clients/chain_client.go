package clients

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"launchpad-backend/internal/config"
)

// ChainClient wraps an ethclient connection with receipt-wait helpers
type ChainClient struct {
	client  *ethclient.Client
	chainID *big.Int
}

// NewChainClient dials the configured RPC endpoints in order and verifies the
// reported network ID before accepting a connection
func NewChainClient(cfg *config.ChainConfig) (*ChainClient, error) {
	if len(cfg.RPCEndpoints) == 0 {
		return nil, fmt.Errorf("no RPC endpoints configured for chain %d", cfg.ChainID)
	}

	expected := big.NewInt(cfg.ChainID)

	var lastErr error
	for _, endpoint := range cfg.RPCEndpoints {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := ethclient.DialContext(ctx, endpoint)
		if err != nil {
			cancel()
			lastErr = fmt.Errorf("failed to dial %s: %w", endpoint, err)
			log.Printf("⚠️ RPC endpoint %s unavailable: %v", endpoint, err)
			continue
		}

		networkID, err := client.NetworkID(ctx)
		cancel()
		if err != nil {
			client.Close()
			lastErr = fmt.Errorf("failed to query network ID from %s: %w", endpoint, err)
			log.Printf("⚠️ RPC endpoint %s did not report a network ID: %v", endpoint, err)
			continue
		}
		if networkID.Cmp(expected) != 0 {
			client.Close()
			lastErr = fmt.Errorf("endpoint %s reports chain %s, expected %d", endpoint, networkID.String(), cfg.ChainID)
			log.Printf("⚠️ RPC endpoint %s is on the wrong chain (%s)", endpoint, networkID.String())
			continue
		}

		log.Printf("✅ Connected to %s (chain %d) via %s", cfg.Name, cfg.ChainID, endpoint)
		return &ChainClient{client: client, chainID: expected}, nil
	}

	return nil, fmt.Errorf("all RPC endpoints failed for chain %d: %w", cfg.ChainID, lastErr)
}

// ChainID returns the verified chain ID
func (c *ChainClient) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// SuggestGasPrice returns the node's current gas price suggestion
func (c *ChainClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.client.SuggestGasPrice(ctx)
}

// BalanceAt returns the latest balance of an account
func (c *ChainClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.client.BalanceAt(ctx, account, nil)
}

// PendingNonceAt returns the next nonce including pending transactions
func (c *ChainClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.client.PendingNonceAt(ctx, account)
}

// SendTransaction broadcasts a signed transaction
func (c *ChainClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.client.SendTransaction(ctx, tx)
}

// WaitMined polls for the receipt of a broadcast transaction until the
// context is done
func (c *ChainClient) WaitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for receipt of %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// Close releases the underlying RPC connection
func (c *ChainClient) Close() {
	c.client.Close()
}
