package units

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in       string
		decimals uint8
		want     string
	}{
		{"100", 6, "100000000"},
		{"1.5", 18, "1500000000000000000"},
		{"0", 8, "0"},
		{"0.00000001", 8, "1"},
		{".5", 6, "500000"},
		{"007.250", 6, "7250000"},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in, tc.decimals)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("parse %q: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{"", "-1", "abc", "1.2.3", "1.", ".", "1e18", "0.0000001"}
	for _, in := range inputs {
		if _, err := Parse(in, 6); !errors.Is(err, model.ErrInvalidAmount) {
			t.Fatalf("parse %q: expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(big.NewInt(125000000), 6); got != "125.000000" {
		t.Fatalf("format mismatch: %s", got)
	}
	if got := Format(big.NewInt(-42), 2); got != "-0.42" {
		t.Fatalf("format negative mismatch: %s", got)
	}
	if got := Format(nil, 0); got != "0" {
		t.Fatalf("format nil mismatch: %s", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(999999),
		big.NewInt(123456789012345),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil),
		huge,
	}

	for _, decimals := range []uint8{6, 8, 18} {
		for _, v := range values {
			text := Format(v, decimals)
			back, err := Parse(text, decimals)
			if err != nil {
				t.Fatalf("parse %q at %d: %v", text, decimals, err)
			}
			if back.Cmp(v) != 0 {
				t.Fatalf("round trip at %d: %s != %s", decimals, back, v)
			}
		}
	}
}

func TestFromDecimalFloors(t *testing.T) {
	d := decimal.RequireFromString("124.3759999")
	if got := FromDecimal(d, 6); got.String() != "124375999" {
		t.Fatalf("floor mismatch: %s", got)
	}
	if got := ToDecimal(big.NewInt(124375000), 6); !got.Equal(decimal.RequireFromString("124.375")) {
		t.Fatalf("to decimal mismatch: %s", got)
	}
}
