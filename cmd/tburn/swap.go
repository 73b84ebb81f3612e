package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runSwap(cmd *cobra.Command, _ []string) error {
	tokenIn, _ := cmd.Flags().GetString("in")
	tokenOut, _ := cmd.Flags().GetString("out")
	amount, _ := cmd.Flags().GetString("amount")
	slippageBps, _ := cmd.Flags().GetInt("slippage-bps")
	if tokenIn == "" || tokenOut == "" || amount == "" {
		return fmt.Errorf("--in, --out and --amount are required")
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{requireRPC: true, requireKey: true, journal: true})
	if err != nil {
		return err
	}
	defer a.Close()

	execCtx, cancel := context.WithTimeout(ctx, a.cfg.ConfirmTimeout)
	defer cancel()

	a.logger.Info("swap start",
		zap.String("token_in", tokenIn),
		zap.String("token_out", tokenOut),
		zap.String("amount_in", amount),
		zap.Int("slippage_bps", slippageBps),
		zap.String("account", a.session.Address().Hex()),
	)
	res := a.svc.ExecuteSwap(execCtx, tokenIn, tokenOut, amount, slippageBps)
	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("swap failed: %s", res.Error)
	}
	return nil
}
