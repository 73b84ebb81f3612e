// Package wallet defines the wallet session capability consumed by the executors
// and an RPC-backed adapter that implements it with a local key.
package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxRequest is an unsigned state-changing call.
type TxRequest struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// Session is the connected wallet as seen by the core.
type Session interface {
	IsConnected() bool
	ChainID() uint64
	Address() common.Address
	// SignAndSend blocks until the transaction is signed, broadcast and mined.
	SignAndSend(ctx context.Context, tx TxRequest) (*types.Receipt, error)
	// Read performs a view call and returns the unpacked outputs.
	Read(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error)
}

// Reader is the read-only subset of Session used for quoting.
type Reader interface {
	Read(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error)
}
