package quote

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/units"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
)

// ReadError marks a failed on-chain read. Only this class of error selects the fallback.
type ReadError struct {
	Method string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Method, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func readErr(method string, err error) error {
	return &ReadError{Method: method, Err: err}
}

// Engine computes swap and bridge quotes.
type Engine struct {
	reg    *registry.Registry
	reader wallet.Reader
	logger *zap.Logger
}

// NewEngine builds an engine. A nil reader makes every quote use the fallback.
func NewEngine(reg *registry.Registry, reader wallet.Reader, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = registry.Default()
	}
	return &Engine{reg: reg, reader: reader, logger: logger}
}

// SwapRequest is a validated swap quote request.
type SwapRequest struct {
	TokenIn     model.AssetDescriptor
	TokenOut    model.AssetDescriptor
	AmountIn    string
	AmountInRaw *big.Int
	Path        []common.Address
}

// ResolveSwap validates symbols and amount and resolves the hop path. It does no I/O.
func (e *Engine) ResolveSwap(tokenIn, tokenOut, amountIn string) (SwapRequest, error) {
	in, err := e.reg.Asset(tokenIn)
	if err != nil {
		return SwapRequest{}, err
	}
	out, err := e.reg.Asset(tokenOut)
	if err != nil {
		return SwapRequest{}, err
	}
	wrapped := e.reg.Contracts().WrappedNative
	// A token <-> WTBURN pair still resolves through the hub, giving a path
	// with WTBURN twice. The router read reverts on it and the quote falls
	// back to reference rates.
	if in.Symbol == out.Symbol || wrapsNative(in, out, wrapped) {
		return SwapRequest{}, fmt.Errorf("%w: cannot swap %s for %s", model.ErrInvalidOperation, in.Symbol, out.Symbol)
	}
	raw, err := units.Parse(amountIn, in.Decimals)
	if err != nil {
		return SwapRequest{}, err
	}
	return SwapRequest{
		TokenIn:     in,
		TokenOut:    out,
		AmountIn:    strings.TrimSpace(amountIn),
		AmountInRaw: raw,
		Path:        ResolvePath(in, out, wrapped),
	}, nil
}

// wrapsNative reports a native <-> wrapped-native pair, which has no router pool.
func wrapsNative(a, b model.AssetDescriptor, wrapped common.Address) bool {
	return (a.IsNative() && b.Address == wrapped) || (b.IsNative() && a.Address == wrapped)
}

// GetSwapQuote prices a swap on-chain, falling back to reference rates when the read fails.
func (e *Engine) GetSwapQuote(ctx context.Context, tokenIn, tokenOut, amountIn string) (model.SwapQuote, error) {
	req, err := e.ResolveSwap(tokenIn, tokenOut, amountIn)
	if err != nil {
		return model.SwapQuote{}, err
	}

	q, err := e.OnChainSwapQuote(ctx, req)
	if err == nil {
		return q, nil
	}
	var rerr *ReadError
	if !errors.As(err, &rerr) {
		return model.SwapQuote{}, err
	}

	e.logger.Warn("swap quote fallback",
		zap.String("token_in", req.TokenIn.Symbol),
		zap.String("token_out", req.TokenOut.Symbol),
		zap.Error(err),
	)
	return FallbackSwapQuote(req.TokenIn, req.TokenOut, req.AmountIn, req.Path), nil
}

// OnChainSwapQuote prices a swap with router.getAmountsOut. Read failures return *ReadError.
func (e *Engine) OnChainSwapQuote(ctx context.Context, req SwapRequest) (model.SwapQuote, error) {
	if e.reader == nil {
		return model.SwapQuote{}, readErr("getAmountsOut", errors.New("no rpc reader configured"))
	}
	routerABI, err := dex.RouterABI()
	if err != nil {
		return model.SwapQuote{}, err
	}

	values, err := e.reader.Read(ctx, e.reg.Contracts().Router, routerABI, "getAmountsOut", req.AmountInRaw, req.Path)
	if err != nil {
		return model.SwapQuote{}, readErr("getAmountsOut", err)
	}
	if len(values) == 0 {
		return model.SwapQuote{}, readErr("getAmountsOut", errors.New("empty return values"))
	}
	amounts, err := dex.AsBigIntSlice(values[0])
	if err != nil {
		return model.SwapQuote{}, readErr("getAmountsOut", err)
	}
	if len(amounts) != len(req.Path) {
		return model.SwapQuote{}, readErr("getAmountsOut", fmt.Errorf("got %d amounts for %d hops", len(amounts), len(req.Path)))
	}

	amountOut := amounts[len(amounts)-1]
	minOut := MinAmountOut(amountOut, DefaultSlippageBps)

	inDec := units.ToDecimal(req.AmountInRaw, req.TokenIn.Decimals)
	outDec := units.ToDecimal(amountOut, req.TokenOut.Decimals)
	price := decimal.Zero
	if !inDec.IsZero() {
		price = outDec.Div(inDec)
	}

	return model.SwapQuote{
		TokenIn:          req.TokenIn.Symbol,
		TokenOut:         req.TokenOut.Symbol,
		AmountIn:         req.AmountIn,
		AmountOut:        units.Format(amountOut, req.TokenOut.Decimals),
		AmountOutMin:     units.Format(minOut, req.TokenOut.Decimals),
		Path:             append([]common.Address(nil), req.Path...),
		PriceImpact:      priceImpact(req.TokenIn.Symbol, req.TokenOut.Symbol, inDec, outDec),
		EstimatedGasCost: referenceGasCost(len(req.Path)),
		ExecutionPrice:   price.StringFixed(displayDecimals),
		Source:           model.QuoteSourceOnChain,
		AmountInRaw:      new(big.Int).Set(req.AmountInRaw),
		AmountOutRaw:     new(big.Int).Set(amountOut),
		AmountOutMinRaw:  minOut,
	}, nil
}

// DefaultSlippageBps is the fixed 0.5% swap slippage tolerance.
const DefaultSlippageBps = 50

// MinAmountOut applies a slippage tolerance in basis points, rounding down.
func MinAmountOut(amountOut *big.Int, slippageBps int) *big.Int {
	if amountOut == nil || amountOut.Sign() <= 0 {
		return new(big.Int)
	}
	if slippageBps < 0 {
		slippageBps = 0
	}
	if slippageBps > 10000 {
		slippageBps = 10000
	}
	out := new(big.Int).Mul(amountOut, big.NewInt(int64(10000-slippageBps)))
	return out.Div(out, big.NewInt(10000))
}

// priceImpact is the shortfall of the executed rate against the reference rate, in percent.
func priceImpact(symbolIn, symbolOut string, in, out decimal.Decimal) string {
	expected := in.Mul(ReferenceRate(symbolIn)).Div(ReferenceRate(symbolOut))
	if expected.IsZero() {
		return "0.00"
	}
	impact := expected.Sub(out).Div(expected).Mul(decimal.NewFromInt(100))
	if impact.IsNegative() {
		impact = decimal.Zero
	}
	return impact.StringFixed(2)
}

// BridgeRequest is a validated bridge quote request.
type BridgeRequest struct {
	Source    model.BridgeChain
	Amount    string
	AmountRaw *big.Int
	Decimals  uint8
}

// ResolveBridge validates the source chain and amount. It does no I/O.
func (e *Engine) ResolveBridge(sourceChain, amount string) (BridgeRequest, error) {
	chain, err := e.reg.Chain(sourceChain)
	if err != nil {
		return BridgeRequest{}, err
	}
	decimals := e.reg.Native().Decimals
	raw, err := units.Parse(amount, decimals)
	if err != nil {
		return BridgeRequest{}, err
	}
	return BridgeRequest{
		Source:    chain,
		Amount:    strings.TrimSpace(amount),
		AmountRaw: raw,
		Decimals:  decimals,
	}, nil
}

// GetBridgeQuote prices a transfer from sourceChain to the home chain.
func (e *Engine) GetBridgeQuote(ctx context.Context, sourceChain, amount string) (model.BridgeQuote, error) {
	req, err := e.ResolveBridge(sourceChain, amount)
	if err != nil {
		return model.BridgeQuote{}, err
	}

	q, err := e.OnChainBridgeQuote(ctx, req)
	if err == nil {
		return q, nil
	}
	var rerr *ReadError
	if !errors.As(err, &rerr) {
		return model.BridgeQuote{}, err
	}

	e.logger.Warn("bridge quote fallback",
		zap.String("source_chain", req.Source.Key),
		zap.Error(err),
	)
	return FallbackBridgeQuote(req.Source, registry.HomeChainName, req.Amount, req.Decimals), nil
}

// BridgeFee reads the current fee for bridging amount to the home chain.
func (e *Engine) BridgeFee(ctx context.Context, source model.BridgeChain, amount *big.Int) (*big.Int, error) {
	if e.reader == nil {
		return nil, readErr("getBridgeFee", errors.New("no rpc reader configured"))
	}
	bridgeABI, err := dex.BridgeABI()
	if err != nil {
		return nil, err
	}
	dest := new(big.Int).SetUint64(e.reg.HomeChainID())
	values, err := e.reader.Read(ctx, source.BridgeAddress, bridgeABI, "getBridgeFee", dest, amount)
	if err != nil {
		return nil, readErr("getBridgeFee", err)
	}
	fee, err := dex.FirstBigInt(values)
	if err != nil {
		return nil, readErr("getBridgeFee", err)
	}
	return fee, nil
}

// OnChainBridgeQuote reads fee and ETA from the source chain's bridge contract.
func (e *Engine) OnChainBridgeQuote(ctx context.Context, req BridgeRequest) (model.BridgeQuote, error) {
	fee, err := e.BridgeFee(ctx, req.Source, req.AmountRaw)
	if err != nil {
		return model.BridgeQuote{}, err
	}
	if fee.Cmp(req.AmountRaw) > 0 {
		return model.BridgeQuote{}, fmt.Errorf("%w: fee %s > amount %s", model.ErrFeeExceedsAmount,
			units.Format(fee, req.Decimals), units.Format(req.AmountRaw, req.Decimals))
	}

	bridgeABI, err := dex.BridgeABI()
	if err != nil {
		return model.BridgeQuote{}, err
	}
	dest := new(big.Int).SetUint64(e.reg.HomeChainID())
	values, err := e.reader.Read(ctx, req.Source.BridgeAddress, bridgeABI, "getEstimatedTime", dest)
	if err != nil {
		return model.BridgeQuote{}, readErr("getEstimatedTime", err)
	}
	eta, err := dex.FirstBigInt(values)
	if err != nil {
		return model.BridgeQuote{}, readErr("getEstimatedTime", err)
	}
	if !eta.IsUint64() {
		return model.BridgeQuote{}, readErr("getEstimatedTime", fmt.Errorf("eta out of range: %s", eta))
	}

	received := new(big.Int).Sub(req.AmountRaw, fee)
	percentage := decimal.Zero
	if req.AmountRaw.Sign() > 0 {
		percentage = decimal.NewFromBigInt(fee, 0).Div(decimal.NewFromBigInt(req.AmountRaw, 0)).Mul(decimal.NewFromInt(100)).Round(4)
	}

	return model.BridgeQuote{
		Amount:           units.Format(req.AmountRaw, req.Decimals),
		Fee:              units.Format(fee, req.Decimals),
		FeePercentage:    percentage.String(),
		AmountReceived:   units.Format(received, req.Decimals),
		EstimatedTime:    eta.Uint64(),
		SourceChain:      req.Source.DisplayName,
		DestinationChain: registry.HomeChainName,
		Source:           model.QuoteSourceOnChain,
		AmountRaw:        new(big.Int).Set(req.AmountRaw),
		FeeRaw:           fee,
	}, nil
}
