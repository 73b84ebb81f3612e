package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteSource records which pricing branch produced a quote.
type QuoteSource string

const (
	QuoteSourceOnChain  QuoteSource = "onchain"
	QuoteSourceFallback QuoteSource = "fallback"
)

// SwapQuote is an immutable swap estimate. Amount fields are decimal strings.
type SwapQuote struct {
	TokenIn          string           `json:"token_in"`
	TokenOut         string           `json:"token_out"`
	AmountIn         string           `json:"amount_in"`
	AmountOut        string           `json:"amount_out"`
	AmountOutMin     string           `json:"amount_out_min"`
	Path             []common.Address `json:"path"`
	PriceImpact      string           `json:"price_impact"`
	EstimatedGasCost string           `json:"estimated_gas_cost"`
	ExecutionPrice   string           `json:"execution_price"`
	Source           QuoteSource      `json:"source"`

	AmountInRaw     *big.Int `json:"-"`
	AmountOutRaw    *big.Int `json:"-"`
	AmountOutMinRaw *big.Int `json:"-"`
}

// BridgeQuote is an immutable bridge estimate.
type BridgeQuote struct {
	Amount           string      `json:"amount"`
	Fee              string      `json:"fee"`
	FeePercentage    string      `json:"fee_percentage"`
	AmountReceived   string      `json:"amount_received"`
	EstimatedTime    uint64      `json:"estimated_time"`
	SourceChain      string      `json:"source_chain"`
	DestinationChain string      `json:"destination_chain"`
	Source           QuoteSource `json:"source"`

	AmountRaw *big.Int `json:"-"`
	FeeRaw    *big.Int `json:"-"`
}
