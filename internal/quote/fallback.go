package quote

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/units"
)

const (
	// FallbackBridgeETA is the estimated bridge time in seconds when the contract can't be read.
	FallbackBridgeETA uint64 = 120

	displayDecimals = 6
)

var (
	// referenceRates are USD reference prices keyed by upper-case symbol.
	referenceRates = map[string]decimal.Decimal{
		"TBURN":  decimal.RequireFromString("1.25"),
		"WTBURN": decimal.RequireFromString("1.25"),
		"USDT":   decimal.NewFromInt(1),
		"USDC":   decimal.NewFromInt(1),
		"WETH":   decimal.NewFromInt(3500),
		"WBTC":   decimal.NewFromInt(65000),
	}

	slippageFactor         = decimal.RequireFromString("0.995")
	fallbackBridgeFeeRatio = decimal.RequireFromString("0.001")
	referenceGasPrice      = decimal.NewFromInt(10 * params.GWei)
)

// ReferenceRate returns the static rate for symbol; unknown symbols rate 1.
func ReferenceRate(symbol string) decimal.Decimal {
	if r, ok := referenceRates[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// referenceGas is the typical gas use of a router swap with the given path length.
func referenceGas(pathLen int) int64 {
	if pathLen > 2 {
		return 180000
	}
	return 130000
}

// referenceGasCost is referenceGas priced at 10 gwei, in native units.
func referenceGasCost(pathLen int) string {
	wei := decimal.NewFromInt(referenceGas(pathLen)).Mul(referenceGasPrice)
	return wei.Shift(-18).StringFixed(displayDecimals)
}

// lenientAmount parses amount for the fallback path. Anything unusable counts as zero.
func lenientAmount(amount string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FallbackSwapQuote prices a swap from the reference-rate table. It never fails.
func FallbackSwapQuote(tokenIn, tokenOut model.AssetDescriptor, amountIn string, path []common.Address) model.SwapQuote {
	in := lenientAmount(amountIn)

	out := in.Mul(ReferenceRate(tokenIn.Symbol)).Div(ReferenceRate(tokenOut.Symbol)).Round(displayDecimals)
	minOut := out.Mul(slippageFactor).RoundFloor(displayDecimals)

	price := decimal.Zero
	if !in.IsZero() {
		price = out.Div(in)
	}

	return model.SwapQuote{
		TokenIn:          tokenIn.Symbol,
		TokenOut:         tokenOut.Symbol,
		AmountIn:         in.String(),
		AmountOut:        out.StringFixed(displayDecimals),
		AmountOutMin:     minOut.StringFixed(displayDecimals),
		Path:             append([]common.Address(nil), path...),
		PriceImpact:      "0.00",
		EstimatedGasCost: referenceGasCost(len(path)),
		ExecutionPrice:   price.StringFixed(displayDecimals),
		Source:           model.QuoteSourceFallback,
		AmountInRaw:      units.FromDecimal(in, tokenIn.Decimals),
		AmountOutRaw:     units.FromDecimal(out, tokenOut.Decimals),
		AmountOutMinRaw:  units.FromDecimal(minOut, tokenOut.Decimals),
	}
}

// FallbackBridgeQuote prices a bridge transfer with a 0.1% fee and a 120 s ETA. It never fails.
func FallbackBridgeQuote(source model.BridgeChain, destination string, amount string, decimals uint8) model.BridgeQuote {
	amt := lenientAmount(amount)
	fee := amt.Mul(fallbackBridgeFeeRatio).Round(displayDecimals)
	received := amt.Sub(fee)

	return model.BridgeQuote{
		Amount:           amt.String(),
		Fee:              fee.StringFixed(displayDecimals),
		FeePercentage:    "0.1",
		AmountReceived:   received.StringFixed(displayDecimals),
		EstimatedTime:    FallbackBridgeETA,
		SourceChain:      source.DisplayName,
		DestinationChain: destination,
		Source:           model.QuoteSourceFallback,
		AmountRaw:        units.FromDecimal(amt, decimals),
		FeeRaw:           units.FromDecimal(fee, decimals),
	}
}
