// Package gas computes buffered gas limits and EIP-1559 fee parameters.
package gas

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

const (
	ordinaryBufferPercent   = 115
	deploymentBufferPercent = 120
)

var (
	// FallbackMaxFeePerGas is used when the node reports no max fee.
	FallbackMaxFeePerGas = big.NewInt(10 * params.GWei)
	// FallbackMaxPriorityFeePerGas is used when the node reports no priority fee.
	FallbackMaxPriorityFeePerGas = big.NewInt(1 * params.GWei)
)

// Backend is the network state the estimator reads.
type Backend interface {
	FeeData(ctx context.Context) (maxFeePerGas, maxPriorityFeePerGas *big.Int, err error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
}

// CallRequest describes a pending state-changing call. A nil To is a contract deployment.
type CallRequest struct {
	From  common.Address
	To    *common.Address
	Value *big.Int
	Data  []byte
}

// Estimate is the buffered gas limit and fee parameters for a call.
type Estimate struct {
	GasLimit             uint64   `json:"gas_limit"`
	MaxFeePerGas         *big.Int `json:"max_fee_per_gas"`
	MaxPriorityFeePerGas *big.Int `json:"max_priority_fee_per_gas"`
	EstimatedCostWei     *big.Int `json:"estimated_cost_wei"`
}

// Estimator derives gas parameters from current network state. It never retries.
type Estimator struct {
	backend Backend
}

// NewEstimator creates an estimator over backend.
func NewEstimator(backend Backend) *Estimator {
	return &Estimator{backend: backend}
}

// Estimate reads fee data and a raw gas estimate, then applies the buffer.
func (e *Estimator) Estimate(ctx context.Context, req CallRequest) (Estimate, error) {
	if e.backend == nil {
		return Estimate{}, fmt.Errorf("gas backend is nil")
	}

	maxFee, tip, err := e.backend.FeeData(ctx)
	if err != nil {
		return Estimate{}, fmt.Errorf("fee data: %w", err)
	}
	if maxFee == nil {
		maxFee = FallbackMaxFeePerGas
	}
	if tip == nil {
		tip = FallbackMaxPriorityFeePerGas
	}

	raw, err := e.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  req.From,
		To:    req.To,
		Value: req.Value,
		Data:  req.Data,
	})
	if err != nil {
		return Estimate{}, fmt.Errorf("estimate gas: %w", err)
	}

	limit := BufferedLimit(raw, req.To == nil)
	cost := new(big.Int).Mul(new(big.Int).SetUint64(limit), maxFee)

	return Estimate{
		GasLimit:             limit,
		MaxFeePerGas:         new(big.Int).Set(maxFee),
		MaxPriorityFeePerGas: new(big.Int).Set(tip),
		EstimatedCostWei:     cost,
	}, nil
}

// BufferedLimit adds 15% to ordinary calls and 20% to deployments, rounding down.
func BufferedLimit(raw uint64, deployment bool) uint64 {
	percent := uint64(ordinaryBufferPercent)
	if deployment {
		percent = deploymentBufferPercent
	}
	limit := new(big.Int).SetUint64(raw)
	limit.Mul(limit, new(big.Int).SetUint64(percent))
	limit.Div(limit, big.NewInt(100))
	return limit.Uint64()
}
