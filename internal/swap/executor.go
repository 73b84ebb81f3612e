// Package swap executes router swaps: quote, optional approval, swap, confirmation.
package swap

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

// Deadline is how long after submission the router accepts the swap.
const Deadline = 1200 * time.Second

// Approver ensures the router may spend the input token.
type Approver interface {
	EnsureAllowance(ctx context.Context, owner, spender common.Address, asset model.AssetDescriptor, required *big.Int) error
}

// Executor runs swaps against the DEX router.
type Executor struct {
	reg      *registry.Registry
	engine   *quote.Engine
	approver Approver
	session  wallet.Session
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock overrides the clock used for the swap deadline.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// NewExecutor returns a swap executor; approver handles ERC20 allowances.
func NewExecutor(reg *registry.Registry, engine *quote.Engine, approver Approver, session wallet.Session, logger *zap.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		reg:      reg,
		engine:   engine,
		approver: approver,
		session:  session,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecuteSwap quotes, approves when the input is a token, submits the swap and
// waits for one confirmation. It never returns an error; failures are reported
// in the result.
func (e *Executor) ExecuteSwap(ctx context.Context, tokenIn, tokenOut, amountIn string, slippageBps int) model.SwapResult {
	res, err := e.execute(ctx, tokenIn, tokenOut, amountIn, slippageBps)
	if err != nil {
		e.logger.Warn("swap failed",
			zap.String("token_in", tokenIn),
			zap.String("token_out", tokenOut),
			zap.String("amount_in", amountIn),
			zap.Error(err),
		)
		res.Success = false
		res.Error = err.Error()
	}
	return res
}

func (e *Executor) execute(ctx context.Context, tokenIn, tokenOut, amountIn string, slippageBps int) (model.SwapResult, error) {
	if e.session == nil || !e.session.IsConnected() {
		return model.SwapResult{}, model.ErrWalletNotConnected
	}

	q, err := e.engine.GetSwapQuote(ctx, tokenIn, tokenOut, amountIn)
	if err != nil {
		return model.SwapResult{}, fmt.Errorf("quote: %w", err)
	}
	in, err := e.reg.Asset(q.TokenIn)
	if err != nil {
		return model.SwapResult{}, err
	}
	out, err := e.reg.Asset(q.TokenOut)
	if err != nil {
		return model.SwapResult{}, err
	}

	minOut := q.AmountOutMinRaw
	if slippageBps > 0 && slippageBps != quote.DefaultSlippageBps {
		minOut = quote.MinAmountOut(q.AmountOutRaw, slippageBps)
	}

	owner := e.session.Address()
	router := e.reg.Contracts().Router

	if !in.IsNative() {
		if e.approver == nil {
			return model.SwapResult{}, fmt.Errorf("%w: no approver configured", model.ErrApprovalFailed)
		}
		if err := e.approver.EnsureAllowance(ctx, owner, router, in, q.AmountInRaw); err != nil {
			return model.SwapResult{}, err
		}
	}

	tx, err := e.buildSwapTx(in, out, q, minOut, owner)
	if err != nil {
		return model.SwapResult{}, err
	}

	receipt, err := e.session.SignAndSend(ctx, tx)
	if err != nil {
		return model.SwapResult{}, fmt.Errorf("send swap: %w", err)
	}
	if receipt == nil {
		return model.SwapResult{}, fmt.Errorf("send swap: no receipt")
	}

	res := model.SwapResult{TransactionHash: receipt.TxHash.Hex()}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return res, fmt.Errorf("%w: swap %s", model.ErrTxReverted, res.TransactionHash)
	}

	e.logger.Info("swap confirmed",
		zap.String("hash", res.TransactionHash),
		zap.String("token_in", q.TokenIn),
		zap.String("token_out", q.TokenOut),
		zap.String("amount_out", q.AmountOut),
	)
	res.Success = true
	res.AmountOut = q.AmountOut
	return res, nil
}

// buildSwapTx picks the router entry point from the native roles of the two assets.
func (e *Executor) buildSwapTx(in, out model.AssetDescriptor, q model.SwapQuote, minOut *big.Int, recipient common.Address) (wallet.TxRequest, error) {
	routerABI, err := dex.RouterABI()
	if err != nil {
		return wallet.TxRequest{}, err
	}
	deadline := big.NewInt(e.now().Add(Deadline).Unix())
	router := e.reg.Contracts().Router

	var (
		data  []byte
		value *big.Int
	)
	switch {
	case in.IsNative():
		data, err = routerABI.Pack("swapExactETHForTokens", minOut, q.Path, recipient, deadline)
		value = new(big.Int).Set(q.AmountInRaw)
	case out.IsNative():
		data, err = routerABI.Pack("swapExactTokensForETH", q.AmountInRaw, minOut, q.Path, recipient, deadline)
	default:
		data, err = routerABI.Pack("swapExactTokensForTokens", q.AmountInRaw, minOut, q.Path, recipient, deadline)
	}
	if err != nil {
		return wallet.TxRequest{}, fmt.Errorf("pack swap: %w", err)
	}
	return wallet.TxRequest{To: router, Value: value, Data: data}, nil
}
