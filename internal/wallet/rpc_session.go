package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/gas"
)

// Backend is the RPC surface the session needs.
type Backend interface {
	bind.DeployBackend
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// RPCSession implements Session with a local key. Without a key it is read-only.
type RPCSession struct {
	backend   Backend
	estimator *gas.Estimator
	key       *ecdsa.PrivateKey
	address   common.Address
	chainID   uint64
	logger    *zap.Logger
}

// NewRPCSession builds a session bound to chainID. key may be nil.
func NewRPCSession(backend Backend, estimator *gas.Estimator, chainID uint64, key *ecdsa.PrivateKey, logger *zap.Logger) *RPCSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RPCSession{
		backend:   backend,
		estimator: estimator,
		key:       key,
		chainID:   chainID,
		logger:    logger,
	}
	if key != nil {
		s.address = crypto.PubkeyToAddress(key.PublicKey)
	}
	return s
}

func (s *RPCSession) IsConnected() bool { return s.key != nil && s.backend != nil }

func (s *RPCSession) ChainID() uint64 { return s.chainID }

func (s *RPCSession) Address() common.Address { return s.address }

// Read packs the call, runs eth_call against the latest block and unpacks the result.
func (s *RPCSession) Read(ctx context.Context, contract common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("rpc backend is nil")
	}
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{From: s.address, To: &contract, Data: data}
	resp, err := s.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := contractABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// SignAndSend estimates gas, signs an EIP-1559 transaction, broadcasts it and waits for the receipt.
func (s *RPCSession) SignAndSend(ctx context.Context, req TxRequest) (*types.Receipt, error) {
	if !s.IsConnected() {
		return nil, fmt.Errorf("session has no signing key")
	}
	if s.estimator == nil {
		return nil, fmt.Errorf("gas estimator is nil")
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	to := req.To

	est, err := s.estimator.Estimate(ctx, gas.CallRequest{
		From:  s.address,
		To:    &to,
		Value: value,
		Data:  req.Data,
	})
	if err != nil {
		return nil, err
	}

	nonce, err := s.backend.PendingNonceAt(ctx, s.address)
	if err != nil {
		return nil, fmt.Errorf("getting nonce: %w", err)
	}

	chainID := new(big.Int).SetUint64(s.chainID)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: est.MaxPriorityFeePerGas,
		GasFeeCap: est.MaxFeePerGas,
		Gas:       est.GasLimit,
		To:        &to,
		Value:     value,
		Data:      req.Data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("signing tx: %w", err)
	}

	if err := s.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("sending tx: %w", err)
	}

	s.logger.Info("tx sent",
		zap.String("hash", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", est.GasLimit),
	)

	receipt, err := bind.WaitMined(ctx, s.backend, signed)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", signed.Hash().Hex(), err)
	}

	s.logger.Info("tx mined",
		zap.String("hash", signed.Hash().Hex()),
		zap.Uint64("status", receipt.Status),
		zap.Uint64("gas_used", receipt.GasUsed),
	)
	return receipt, nil
}
