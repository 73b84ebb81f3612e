package model

import "github.com/ethereum/go-ethereum/common"

// AssetDescriptor is static metadata for a fungible token or the chain's native coin.
type AssetDescriptor struct {
	Symbol      string         `json:"symbol"`
	Address     common.Address `json:"address"`
	Decimals    uint8          `json:"decimals"`
	HomeChainID uint64         `json:"home_chain_id,omitempty"`
}

// IsNative reports whether the descriptor uses the zero-address sentinel.
func (a AssetDescriptor) IsNative() bool {
	return a.Address == (common.Address{})
}

// BridgeChain describes a chain the bridge contract can be called from.
type BridgeChain struct {
	Key           string         `json:"key"`
	ChainID       uint64         `json:"chain_id"`
	BridgeAddress common.Address `json:"bridge_address"`
	DisplayName   string         `json:"display_name"`
}
