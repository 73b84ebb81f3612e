package quote

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
)

func TestFallbackSwapQuoteReferenceRates(t *testing.T) {
	reg := registry.Default()
	in, _ := reg.Asset("TBURN")
	out, _ := reg.Asset("USDT")
	path := ResolvePath(in, out, reg.Contracts().WrappedNative)

	q := FallbackSwapQuote(in, out, "100", path)
	if q.AmountOut != "125.000000" {
		t.Fatalf("amount out mismatch: %s", q.AmountOut)
	}
	if q.AmountOutMin != "124.375000" {
		t.Fatalf("amount out min mismatch: %s", q.AmountOutMin)
	}
	if q.ExecutionPrice != "1.250000" {
		t.Fatalf("execution price mismatch: %s", q.ExecutionPrice)
	}
	if q.EstimatedGasCost != "0.001300" {
		t.Fatalf("gas cost mismatch: %s", q.EstimatedGasCost)
	}
	if q.Source != model.QuoteSourceFallback {
		t.Fatalf("source mismatch: %s", q.Source)
	}
	if q.AmountOutRaw.String() != "125000000" || q.AmountOutMinRaw.String() != "124375000" {
		t.Fatalf("raw mismatch: %s %s", q.AmountOutRaw, q.AmountOutMinRaw)
	}
}

func TestFallbackSwapQuoteNeverFails(t *testing.T) {
	known := registry.Default().Assets()
	unknown := []model.AssetDescriptor{
		{Symbol: "FOO", Address: common.HexToAddress("0x01"), Decimals: 0},
		{Symbol: "", Address: common.HexToAddress("0x02"), Decimals: 18},
	}
	assets := append(append([]model.AssetDescriptor{}, known...), unknown...)
	amounts := []string{"0", "1", "0.000001", "123456789.123456789", "", "abc", "-5", "1e3"}

	for _, in := range assets {
		for _, out := range assets {
			for _, amount := range amounts {
				q := FallbackSwapQuote(in, out, amount, []common.Address{in.Address, out.Address})
				got := decimal.RequireFromString(q.AmountOut)
				minOut := decimal.RequireFromString(q.AmountOutMin)
				if minOut.GreaterThan(got) || minOut.IsNegative() {
					t.Fatalf("%s->%s %q: min %s out %s", in.Symbol, out.Symbol, amount, q.AmountOutMin, q.AmountOut)
				}
				if q.AmountOutMinRaw.Cmp(q.AmountOutRaw) > 0 {
					t.Fatalf("%s->%s %q: raw min above raw out", in.Symbol, out.Symbol, amount)
				}
			}
		}
	}
}

func TestFallbackSwapQuoteZeroAmount(t *testing.T) {
	reg := registry.Default()
	in, _ := reg.Asset("USDC")
	out, _ := reg.Asset("WETH")

	q := FallbackSwapQuote(in, out, "0", ResolvePath(in, out, reg.Contracts().WrappedNative))
	if q.AmountOut != "0.000000" || q.AmountOutMin != "0.000000" || q.ExecutionPrice != "0.000000" {
		t.Fatalf("unexpected zero quote: %+v", q)
	}
	if q.EstimatedGasCost != "0.001800" {
		t.Fatalf("three hop gas cost mismatch: %s", q.EstimatedGasCost)
	}
}

func TestFallbackSwapQuoteUnknownRateDefaultsToOne(t *testing.T) {
	a := model.AssetDescriptor{Symbol: "AAA", Decimals: 6}
	b := model.AssetDescriptor{Symbol: "BBB", Decimals: 6}
	q := FallbackSwapQuote(a, b, "42.5", nil)
	if q.AmountOut != "42.500000" || q.ExecutionPrice != "1.000000" {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

func TestFallbackBridgeQuote(t *testing.T) {
	chain, err := registry.Default().Chain("ethereum")
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	q := FallbackBridgeQuote(chain, registry.HomeChainName, "1000", 18)
	if q.Fee != "1.000000" {
		t.Fatalf("fee mismatch: %s", q.Fee)
	}
	if q.AmountReceived != "999.000000" {
		t.Fatalf("received mismatch: %s", q.AmountReceived)
	}
	if q.EstimatedTime != 120 {
		t.Fatalf("eta mismatch: %d", q.EstimatedTime)
	}
	if q.FeePercentage != "0.1" || q.SourceChain != "Ethereum" {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if q.FeeRaw.String() != "1000000000000000000" {
		t.Fatalf("raw fee mismatch: %s", q.FeeRaw)
	}
}

func TestFallbackBridgeQuoteGarbageAmount(t *testing.T) {
	chain, _ := registry.Default().Chain("bsc")
	q := FallbackBridgeQuote(chain, registry.HomeChainName, "not-a-number", 18)
	if q.Fee != "0.000000" || q.AmountReceived != "0.000000" {
		t.Fatalf("unexpected quote: %+v", q)
	}
}
