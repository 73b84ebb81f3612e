package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runQuoteSwap(cmd *cobra.Command, _ []string) error {
	tokenIn, _ := cmd.Flags().GetString("in")
	tokenOut, _ := cmd.Flags().GetString("out")
	amount, _ := cmd.Flags().GetString("amount")
	if tokenIn == "" || tokenOut == "" || amount == "" {
		return fmt.Errorf("--in, --out and --amount are required")
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.svc.GetSwapQuote(ctx, tokenIn, tokenOut, amount)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), q)
}

func runQuoteBridge(cmd *cobra.Command, _ []string) error {
	sourceChain, _ := cmd.Flags().GetString("from-chain")
	amount, _ := cmd.Flags().GetString("amount")
	if sourceChain == "" || amount == "" {
		return fmt.Errorf("--from-chain and --amount are required")
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.svc.GetBridgeQuote(ctx, sourceChain, amount)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), q)
}
