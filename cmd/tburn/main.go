package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/quote"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tburn",
		Short:        "TBURN swap and bridge client",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file path")
	pf.String("rpc", "", "RPC URL of the chain to read from and send to")
	pf.Uint64("chain-id", registry.HomeChainID, "home chain id")
	pf.String("private-key", "", "hex private key used for signing")
	pf.String("mnemonic", "", "BIP-39 mnemonic used for signing")
	pf.Uint32("account-index", 0, "account index under m/44'/60'/0'/0")
	pf.String("router", "", "DEX router address override")
	pf.String("factory", "", "DEX factory address override")
	pf.String("bridge", "", "bridge address override")
	pf.String("wrapped-native", "", "wrapped native asset address override")
	pf.Duration("confirm-timeout", 3*time.Minute, "maximum wait for a transaction receipt")
	pf.Int("dial-retries", 3, "RPC connection attempts after the first")
	pf.Duration("dial-backoff", 500*time.Millisecond, "initial RPC connection backoff")
	pf.String("journal", "", "append executed outcomes to this JSONL file")
	pf.String("pg-dsn", "", "Postgres DSN for the outcome journal")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a swap or a bridge transfer without sending anything",
	}

	quoteSwapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap",
		RunE:  runQuoteSwap,
	}
	addSwapFlags(quoteSwapCmd)
	quoteCmd.AddCommand(quoteSwapCmd)

	quoteBridgeCmd := &cobra.Command{
		Use:   "bridge",
		Short: "Quote a bridge transfer to the home chain",
		RunE:  runQuoteBridge,
	}
	addBridgeFlags(quoteBridgeCmd)
	quoteCmd.AddCommand(quoteBridgeCmd)

	root.AddCommand(quoteCmd)

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Execute a swap through the DEX router",
		RunE:  runSwap,
	}
	addSwapFlags(swapCmd)
	swapCmd.Flags().Int("slippage-bps", quote.DefaultSlippageBps, "slippage tolerance in basis points")
	root.AddCommand(swapCmd)

	bridgeCmd := &cobra.Command{
		Use:   "bridge",
		Short: "Bridge funds from a supported chain to the home chain",
		RunE:  runBridge,
	}
	addBridgeFlags(bridgeCmd)

	transferIDCmd := &cobra.Command{
		Use:   "transfer-id",
		Short: "Extract the transfer id from a mined bridge transaction",
		RunE:  runTransferID,
	}
	transferIDCmd.Flags().String("tx", "", "bridge transaction hash")
	bridgeCmd.AddCommand(transferIDCmd)

	root.AddCommand(bridgeCmd)

	gasCmd := &cobra.Command{
		Use:   "gas",
		Short: "Estimate buffered gas and fees for a call",
		RunE:  runGas,
	}
	gasCmd.Flags().String("from", "", "sender address (defaults to the configured key)")
	gasCmd.Flags().String("to", "", "target address, empty for a contract deployment")
	gasCmd.Flags().String("data", "", "hex call data")
	gasCmd.Flags().String("value", "0", "value in native units")
	root.AddCommand(gasCmd)

	root.AddCommand(&cobra.Command{
		Use:   "assets",
		Short: "List known assets",
		RunE:  runAssets,
	})
	root.AddCommand(&cobra.Command{
		Use:   "chains",
		Short: "List supported bridge source chains",
		RunE:  runChains,
	})

	return root
}

func addSwapFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "input asset symbol")
	cmd.Flags().String("out", "", "output asset symbol")
	cmd.Flags().String("amount", "", "input amount in display units")
}

func addBridgeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from-chain", "", "source chain key (see `tburn chains`)")
	cmd.Flags().String("amount", "", "amount in display units")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
