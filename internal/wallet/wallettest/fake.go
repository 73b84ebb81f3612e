// Package wallettest provides an in-memory wallet.Session for tests.
package wallettest

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
)

// ReadCall is one recorded view call.
type ReadCall struct {
	Contract common.Address
	Method   string
	Args     []interface{}
}

// ReadFunc serves a view call.
type ReadFunc func(args []interface{}) ([]interface{}, error)

// Session records every submitted transaction and serves scripted reads.
// Reads without a handler fail, which drives quoting into its fallback.
type Session struct {
	Connected bool
	Chain     uint64
	Account   common.Address

	// Receipt builds the receipt for the n-th submitted transaction (0-based).
	// When nil a successful receipt with no logs is returned.
	Receipt func(n int, tx wallet.TxRequest) (*types.Receipt, error)

	mu    sync.Mutex
	reads map[string]ReadFunc
	calls []ReadCall
	sent  []wallet.TxRequest
}

// New returns a connected session on chainID.
func New(chainID uint64, account common.Address) *Session {
	return &Session{
		Connected: true,
		Chain:     chainID,
		Account:   account,
		reads:     make(map[string]ReadFunc),
	}
}

func readKey(contract common.Address, method string) string {
	return strings.ToLower(contract.Hex()) + "/" + method
}

// HandleRead registers a handler for method on contract.
func (s *Session) HandleRead(contract common.Address, method string, fn ReadFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reads == nil {
		s.reads = make(map[string]ReadFunc)
	}
	s.reads[readKey(contract, method)] = fn
}

// ReturnBigInt registers a read that always returns value.
func (s *Session) ReturnBigInt(contract common.Address, method string, value *big.Int) {
	s.HandleRead(contract, method, func([]interface{}) ([]interface{}, error) {
		return []interface{}{new(big.Int).Set(value)}, nil
	})
}

func (s *Session) IsConnected() bool { return s.Connected }

func (s *Session) ChainID() uint64 { return s.Chain }

func (s *Session) Address() common.Address { return s.Account }

func (s *Session) Read(_ context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if _, ok := contractABI.Methods[method]; !ok {
		return nil, fmt.Errorf("method %s not in abi", method)
	}
	s.mu.Lock()
	s.calls = append(s.calls, ReadCall{Contract: contract, Method: method, Args: args})
	fn := s.reads[readKey(contract, method)]
	s.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("execution reverted: no handler for %s", method)
	}
	return fn(args)
}

func (s *Session) SignAndSend(_ context.Context, tx wallet.TxRequest) (*types.Receipt, error) {
	s.mu.Lock()
	n := len(s.sent)
	s.sent = append(s.sent, tx)
	build := s.Receipt
	s.mu.Unlock()

	if build != nil {
		return build(n, tx)
	}
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: TxHash(n),
	}, nil
}

// Sent returns the submitted transactions in order.
func (s *Session) Sent() []wallet.TxRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]wallet.TxRequest(nil), s.sent...)
}

// Reads returns the recorded view calls in order.
func (s *Session) Reads() []ReadCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ReadCall(nil), s.calls...)
}

// ReadsOf returns the recorded calls of one method.
func (s *Session) ReadsOf(method string) []ReadCall {
	var out []ReadCall
	for _, c := range s.Reads() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// TxHash is the deterministic hash the fake assigns to the n-th transaction.
func TxHash(n int) common.Hash {
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("tx-%d", n)))
}

var _ wallet.Session = (*Session)(nil)
