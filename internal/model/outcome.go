package model

import "time"

// SwapResult is the terminal outcome of an executed swap.
type SwapResult struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	AmountOut       string `json:"amount_out,omitempty"`
	Error           string `json:"error,omitempty"`
}

// BridgeResult is the terminal outcome of an executed bridge transfer.
type BridgeResult struct {
	Success          bool   `json:"success"`
	TransactionHash  string `json:"transaction_hash,omitempty"`
	TransferID       string `json:"transfer_id,omitempty"`
	EstimatedArrival string `json:"estimated_arrival,omitempty"`
	Error            string `json:"error,omitempty"`
}

// OutcomeKind names the operation an OutcomeRecord belongs to.
type OutcomeKind string

const (
	OutcomeSwap   OutcomeKind = "swap"
	OutcomeBridge OutcomeKind = "bridge"
)

// OutcomeRecord is the journal representation of an executed operation.
type OutcomeRecord struct {
	Kind       OutcomeKind `json:"kind"`
	ChainID    uint64      `json:"chain_id"`
	Account    string      `json:"account"`
	TxHash     string      `json:"tx_hash,omitempty"`
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	AssetIn    string      `json:"asset_in,omitempty"`
	AssetOut   string      `json:"asset_out,omitempty"`
	AmountIn   string      `json:"amount_in"`
	AmountOut  string      `json:"amount_out,omitempty"`
	TransferID string      `json:"transfer_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SwapOutcome builds a journal record from a swap result.
func SwapOutcome(chainID uint64, account, tokenIn, tokenOut, amountIn string, res SwapResult, at time.Time) OutcomeRecord {
	return OutcomeRecord{
		Kind:      OutcomeSwap,
		ChainID:   chainID,
		Account:   account,
		TxHash:    res.TransactionHash,
		Success:   res.Success,
		Error:     res.Error,
		AssetIn:   tokenIn,
		AssetOut:  tokenOut,
		AmountIn:  amountIn,
		AmountOut: res.AmountOut,
		CreatedAt: at.UTC(),
	}
}

// BridgeOutcome builds a journal record from a bridge result.
func BridgeOutcome(chainID uint64, account, sourceChain, amount string, res BridgeResult, at time.Time) OutcomeRecord {
	return OutcomeRecord{
		Kind:       OutcomeBridge,
		ChainID:    chainID,
		Account:    account,
		TxHash:     res.TransactionHash,
		Success:    res.Success,
		Error:      res.Error,
		AssetIn:    sourceChain,
		AmountIn:   amount,
		TransferID: res.TransferID,
		CreatedAt:  at.UTC(),
	}
}
