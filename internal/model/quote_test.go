package model

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestSwapQuoteJSONStringAmounts(t *testing.T) {
	q := SwapQuote{
		TokenIn:         "TBURN",
		TokenOut:        "USDT",
		AmountIn:        "100",
		AmountOut:       "125.000000",
		AmountOutMin:    "124.375000",
		Path:            []common.Address{common.HexToAddress("0x01"), common.HexToAddress("0x02")},
		ExecutionPrice:  "1.250000",
		Source:          QuoteSourceFallback,
		AmountInRaw:     big.NewInt(100),
		AmountOutRaw:    big.NewInt(125),
		AmountOutMinRaw: big.NewInt(124),
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"amount_in", "amount_out", "amount_out_min", "execution_price"} {
		if _, ok := decoded[key].(string); !ok {
			t.Fatalf("%s should be string", key)
		}
	}
	for _, key := range []string{"AmountInRaw", "AmountOutRaw", "AmountOutMinRaw"} {
		if _, ok := decoded[key]; ok {
			t.Fatalf("%s must not be serialized", key)
		}
	}
	if decoded["source"] != "fallback" {
		t.Fatalf("source mismatch: %v", decoded["source"])
	}
}

func TestBridgeQuoteJSONOmitsRawFields(t *testing.T) {
	data, err := json.Marshal(BridgeQuote{Amount: "1000", Fee: "1.000000", AmountRaw: big.NewInt(1), FeeRaw: big.NewInt(1)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded) != 8 {
		t.Fatalf("unexpected field count %d: %v", len(decoded), decoded)
	}
}

func TestAssetIsNative(t *testing.T) {
	if !(AssetDescriptor{Symbol: "TBURN"}).IsNative() {
		t.Fatalf("zero address must be native")
	}
	if (AssetDescriptor{Symbol: "USDT", Address: common.HexToAddress("0x01")}).IsNative() {
		t.Fatalf("token must not be native")
	}
}
