package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/config"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/gas"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/units"
)

type gasOutput struct {
	GasLimit             uint64 `json:"gas_limit"`
	MaxFeePerGas         string `json:"max_fee_per_gas"`
	MaxPriorityFeePerGas string `json:"max_priority_fee_per_gas"`
	EstimatedCostWei     string `json:"estimated_cost_wei"`
	EstimatedCost        string `json:"estimated_cost"`
}

func runGas(cmd *cobra.Command, _ []string) error {
	fromHex, _ := cmd.Flags().GetString("from")
	toHex, _ := cmd.Flags().GetString("to")
	dataHex, _ := cmd.Flags().GetString("data")
	valueStr, _ := cmd.Flags().GetString("value")

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{requireRPC: true})
	if err != nil {
		return err
	}
	defer a.Close()

	decimals := a.reg.Native().Decimals
	value, err := units.Parse(valueStr, decimals)
	if err != nil {
		return fmt.Errorf("--value: %w", err)
	}

	req := gas.CallRequest{Value: value}
	if toHex != "" {
		to, err := config.ParseAddress(toHex)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		req.To = &to
	}
	req.From = a.session.Address()
	if fromHex != "" {
		from, err := config.ParseAddress(fromHex)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		req.From = from
	}
	if dataHex != "" {
		req.Data, err = hexutil.Decode(dataHex)
		if err != nil {
			return fmt.Errorf("--data: %w", err)
		}
	}
	if req.To == nil && len(req.Data) == 0 {
		return fmt.Errorf("a deployment needs --data")
	}

	est, err := gas.NewEstimator(a.client).Estimate(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), gasOutput{
		GasLimit:             est.GasLimit,
		MaxFeePerGas:         est.MaxFeePerGas.String(),
		MaxPriorityFeePerGas: est.MaxPriorityFeePerGas.String(),
		EstimatedCostWei:     est.EstimatedCostWei.String(),
		EstimatedCost:        units.Format(est.EstimatedCostWei, decimals),
	})
}
