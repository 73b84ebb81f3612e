package dex

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const bridgeABIJSON = `[
  {
    "inputs": [
      {"internalType": "uint256", "name": "destChainId", "type": "uint256"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "getBridgeFee",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "destChainId", "type": "uint256"}],
    "name": "getEstimatedTime",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "recipient", "type": "address"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"},
      {"internalType": "uint256", "name": "destChainId", "type": "uint256"}
    ],
    "name": "bridgeTokens",
    "outputs": [{"internalType": "bytes32", "name": "transferId", "type": "bytes32"}],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "bytes32", "name": "transferId", "type": "bytes32"},
      {"indexed": true, "internalType": "address", "name": "sender", "type": "address"},
      {"indexed": false, "internalType": "address", "name": "recipient", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "destChainId", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "fee", "type": "uint256"}
    ],
    "name": "BridgeInitiated",
    "type": "event"
  }
]`

var (
	bridgeABI     abi.ABI
	bridgeABIOnce sync.Once
	bridgeABIErr  error
)

// BridgeABI returns the parsed cross-chain bridge ABI.
func BridgeABI() (abi.ABI, error) {
	bridgeABIOnce.Do(func() {
		bridgeABI, bridgeABIErr = abi.JSON(strings.NewReader(bridgeABIJSON))
	})
	return bridgeABI, bridgeABIErr
}
