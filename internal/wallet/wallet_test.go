package wallet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well-known hardhat test key #0
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testKeyAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestNewPrivateKeyWallet(t *testing.T) {
	w, err := NewPrivateKeyWallet(testKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testKeyAddress), w.Address())
}

func TestNewPrivateKeyWalletAcceptsPrefix(t *testing.T) {
	w, err := NewPrivateKeyWallet("0x" + testKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testKeyAddress), w.Address())
}

func TestNewPrivateKeyWalletRejectsGarbage(t *testing.T) {
	_, err := NewPrivateKeyWallet("not-a-key")
	require.Error(t, err)

	_, err = NewPrivateKeyWallet("")
	require.Error(t, err)
}

func TestSignTx(t *testing.T) {
	w, err := NewPrivateKeyWallet(testKey)
	require.NoError(t, err)

	chainID := big.NewInt(31337)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tx := types.NewTransaction(0, to, big.NewInt(1), 21000, big.NewInt(1_000_000_000), nil)

	signed, err := w.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.NewEIP155Signer(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), sender)
}
