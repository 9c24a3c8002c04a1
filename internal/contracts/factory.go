// Package contracts holds the TokenFactory ABI surface used by the
// submission pipeline: calldata packing for createToken and TokenCreated
// event extraction from receipts.
package contracts

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// FactoryABI is the fragment of the TokenFactory contract this service
// touches. createToken is payable: the deployment fee travels as tx value.
const FactoryABI = `[
	{
		"inputs": [
			{"internalType": "string", "name": "name", "type": "string"},
			{"internalType": "string", "name": "symbol", "type": "string"},
			{"internalType": "uint256", "name": "initialSupply", "type": "uint256"},
			{"internalType": "bool", "name": "disableMintingImmediately", "type": "bool"}
		],
		"name": "createToken",
		"outputs": [{"internalType": "address", "name": "tokenAddress", "type": "address"}],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "address", "name": "tokenAddress", "type": "address"},
			{"indexed": true, "internalType": "address", "name": "owner", "type": "address"},
			{"indexed": false, "internalType": "string", "name": "name", "type": "string"},
			{"indexed": false, "internalType": "string", "name": "symbol", "type": "string"},
			{"indexed": false, "internalType": "uint256", "name": "initialSupply", "type": "uint256"}
		],
		"name": "TokenCreated",
		"type": "event"
	}
]`

// TokenCreatedEventName is the receipt event carrying the new token address.
const TokenCreatedEventName = "TokenCreated"

var factoryABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(FactoryABI))
	if err != nil {
		panic(fmt.Sprintf("invalid factory ABI: %v", err))
	}
	factoryABI = parsed
}

// PackCreateToken encodes the createToken calldata.
func PackCreateToken(name, symbol string, initialSupply *big.Int, disableMinting bool) ([]byte, error) {
	data, err := factoryABI.Pack("createToken", name, symbol, initialSupply, disableMinting)
	if err != nil {
		return nil, fmt.Errorf("failed to pack createToken call: %w", err)
	}
	return data, nil
}

// TokenCreatedID returns the topic hash identifying TokenCreated logs.
func TokenCreatedID() common.Hash {
	return factoryABI.Events[TokenCreatedEventName].ID
}

// ExtractTokenAddress scans a confirmed receipt for the factory's
// TokenCreated event and returns the created token's address. A receipt
// without the event, or with a malformed one, is an error even though the
// transaction itself succeeded on-chain.
func ExtractTokenAddress(receipt *types.Receipt, factory common.Address) (common.Address, error) {
	if receipt == nil {
		return common.Address{}, fmt.Errorf("receipt is nil")
	}

	eventID := TokenCreatedID()
	for _, logEntry := range receipt.Logs {
		if logEntry == nil || logEntry.Address != factory {
			continue
		}
		if len(logEntry.Topics) == 0 || logEntry.Topics[0] != eventID {
			continue
		}
		// tokenAddress is the first indexed argument
		if len(logEntry.Topics) < 2 {
			return common.Address{}, fmt.Errorf("TokenCreated event is missing the token address topic")
		}
		tokenAddress := common.BytesToAddress(logEntry.Topics[1].Bytes())
		if tokenAddress == (common.Address{}) {
			return common.Address{}, fmt.Errorf("TokenCreated event carries a zero token address")
		}
		return tokenAddress, nil
	}

	return common.Address{}, fmt.Errorf("TokenCreated event log not found in receipt %s", receipt.TxHash.Hex())
}
