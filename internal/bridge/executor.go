// Package bridge executes transfers from a supported chain to the home chain.
package bridge

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/quote"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
)

// Executor submits bridge transfers through the source chain's bridge contract.
type Executor struct {
	reg     *registry.Registry
	engine  *quote.Engine
	session wallet.Session
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock overrides the clock used for the arrival estimate.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// NewExecutor returns a bridge executor. A nil logger is replaced with a no-op.
func NewExecutor(reg *registry.Registry, engine *quote.Engine, session wallet.Session, logger *zap.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		reg:     reg,
		engine:  engine,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetBridgeQuote prices a transfer from sourceChain.
func (e *Executor) GetBridgeQuote(ctx context.Context, sourceChain, amount string) (model.BridgeQuote, error) {
	return e.engine.GetBridgeQuote(ctx, sourceChain, amount)
}

// ExecuteBridge validates the connected network, reads the current fee, submits
// bridgeTokens with the fee as value and extracts the transfer id from the receipt.
// It never returns an error; failures are reported in the result.
func (e *Executor) ExecuteBridge(ctx context.Context, sourceChain, amount string) model.BridgeResult {
	res, err := e.execute(ctx, sourceChain, amount)
	if err != nil {
		e.logger.Warn("bridge failed",
			zap.String("source_chain", sourceChain),
			zap.String("amount", amount),
			zap.Error(err),
		)
		res.Success = false
		res.Error = err.Error()
	}
	return res
}

func (e *Executor) execute(ctx context.Context, sourceChain, amount string) (model.BridgeResult, error) {
	if e.session == nil || !e.session.IsConnected() {
		return model.BridgeResult{}, model.ErrWalletNotConnected
	}

	chain, err := e.reg.Chain(sourceChain)
	if err != nil {
		return model.BridgeResult{}, err
	}
	if got := e.session.ChainID(); got != chain.ChainID {
		return model.BridgeResult{}, fmt.Errorf("%w: connected to chain id %d, please switch to %s (chain id %d)",
			model.ErrWrongNetwork, got, chain.DisplayName, chain.ChainID)
	}

	q, err := e.engine.GetBridgeQuote(ctx, chain.Key, amount)
	if err != nil {
		return model.BridgeResult{}, fmt.Errorf("quote: %w", err)
	}

	fee, err := e.engine.BridgeFee(ctx, chain, q.AmountRaw)
	if err != nil {
		return model.BridgeResult{}, fmt.Errorf("bridge fee: %w", err)
	}
	if fee.Cmp(q.AmountRaw) > 0 {
		return model.BridgeResult{}, fmt.Errorf("%w: fee %s > amount %s", model.ErrFeeExceedsAmount, fee, q.AmountRaw)
	}

	bridgeABI, err := dex.BridgeABI()
	if err != nil {
		return model.BridgeResult{}, err
	}
	recipient := e.session.Address()
	dest := new(big.Int).SetUint64(e.reg.HomeChainID())
	data, err := bridgeABI.Pack("bridgeTokens", recipient, q.AmountRaw, dest)
	if err != nil {
		return model.BridgeResult{}, fmt.Errorf("pack bridgeTokens: %w", err)
	}

	submitted := e.now()
	receipt, err := e.session.SignAndSend(ctx, wallet.TxRequest{
		To:    chain.BridgeAddress,
		Value: fee,
		Data:  data,
	})
	if err != nil {
		return model.BridgeResult{}, fmt.Errorf("send bridge: %w", err)
	}
	if receipt == nil {
		return model.BridgeResult{}, fmt.Errorf("send bridge: no receipt")
	}

	res := model.BridgeResult{TransactionHash: receipt.TxHash.Hex()}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return res, fmt.Errorf("%w: bridge %s", model.ErrTxReverted, res.TransactionHash)
	}

	res.Success = true
	res.EstimatedArrival = submitted.Add(time.Duration(q.EstimatedTime) * time.Second).UTC().Format(time.RFC3339)
	if id, ok := ExtractTransferID(receipt.Logs); ok {
		res.TransferID = id.Hex()
	} else {
		e.logger.Warn("bridge initiated event not found", zap.String("hash", res.TransactionHash))
	}

	e.logger.Info("bridge confirmed",
		zap.String("hash", res.TransactionHash),
		zap.String("source_chain", chain.Key),
		zap.String("transfer_id", res.TransferID),
		zap.String("estimated_arrival", res.EstimatedArrival),
	)
	return res, nil
}

// ExtractTransferID returns the transfer id of the first BridgeInitiated log.
// Logs of other events, and malformed ones, are skipped.
func ExtractTransferID(logs []*types.Log) (common.Hash, bool) {
	for _, log := range logs {
		if !dex.IsBridgeInitiated(log) {
			continue
		}
		event, err := dex.DecodeBridgeInitiated(log)
		if err != nil {
			continue
		}
		return event.TransferID, true
	}
	return common.Hash{}, false
}
