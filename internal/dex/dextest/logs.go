// Package dextest builds ABI-packed contract fixtures for tests.
package dextest

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
)

// BuildBridgeInitiatedLog packs a BridgeInitiated log for tests.
func BuildBridgeInitiatedLog(t testing.TB, transferID common.Hash, sender, recipient common.Address, amount, destChainID, fee *big.Int) *types.Log {
	t.Helper()

	bridgeABI, err := dex.BridgeABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	event := bridgeABI.Events["BridgeInitiated"]
	data, err := event.Inputs.NonIndexed().Pack(recipient, amount, destChainID, fee)
	if err != nil {
		t.Fatalf("pack BridgeInitiated: %v", err)
	}

	return &types.Log{
		Topics: []common.Hash{
			event.ID,
			transferID,
			common.BytesToHash(sender.Bytes()),
		},
		Data: data,
	}
}
