package main

import (
	"github.com/spf13/cobra"
)

type contractsOutput struct {
	HomeChainID   uint64 `json:"home_chain_id"`
	Router        string `json:"router"`
	Factory       string `json:"factory"`
	Bridge        string `json:"bridge"`
	WrappedNative string `json:"wrapped_native"`
}

func runAssets(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.reg.Contracts()
	return printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"contracts": contractsOutput{
			HomeChainID:   a.reg.HomeChainID(),
			Router:        c.Router.Hex(),
			Factory:       c.Factory.Hex(),
			Bridge:        c.Bridge.Hex(),
			WrappedNative: c.WrappedNative.Hex(),
		},
		"assets": a.reg.Assets(),
	})
}

func runChains(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	return printJSON(cmd.OutOrStdout(), a.reg.Chains())
}
