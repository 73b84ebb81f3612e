package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/bridge"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/units"
)

func runBridge(cmd *cobra.Command, _ []string) error {
	sourceChain, _ := cmd.Flags().GetString("from-chain")
	amount, _ := cmd.Flags().GetString("amount")
	if sourceChain == "" || amount == "" {
		return fmt.Errorf("--from-chain and --amount are required")
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

	a.logger.Info("bridge start",
		zap.String("source_chain", sourceChain),
		zap.String("amount", amount),
		zap.Uint64("connected_chain_id", a.session.ChainID()),
		zap.String("account", a.session.Address().Hex()),
	)
	res := a.svc.ExecuteBridge(execCtx, sourceChain, amount)
	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("bridge failed: %s", res.Error)
	}
	return nil
}

type transferIDOutput struct {
	TransactionHash string `json:"transaction_hash"`
	Found           bool   `json:"found"`
	TransferID      string `json:"transfer_id,omitempty"`
	Sender          string `json:"sender,omitempty"`
	Recipient       string `json:"recipient,omitempty"`
	Amount          string `json:"amount,omitempty"`
	Fee             string `json:"fee,omitempty"`
	DestChainID     uint64 `json:"dest_chain_id,omitempty"`
}

func runTransferID(cmd *cobra.Command, _ []string) error {
	txHex, _ := cmd.Flags().GetString("tx")
	raw, err := hexutil.Decode(txHex)
	if err != nil || len(raw) != common.HashLength {
		return fmt.Errorf("invalid --tx hash: %q", txHex)
	}
	txHash := common.BytesToHash(raw)

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, cmd, appOptions{requireRPC: true})
	if err != nil {
		return err
	}
	defer a.Close()

	receipt, err := a.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		return fmt.Errorf("fetch receipt: %w", err)
	}

	out := transferIDOutput{TransactionHash: txHash.Hex()}
	id, ok := bridge.ExtractTransferID(receipt.Logs)
	if ok {
		out.Found = true
		out.TransferID = id.Hex()
		decimals := a.reg.Native().Decimals
		for _, log := range receipt.Logs {
			if !dex.IsBridgeInitiated(log) {
				continue
			}
			event, err := dex.DecodeBridgeInitiated(log)
			if err != nil || event.TransferID != id {
				continue
			}
			out.Sender = event.Sender.Hex()
			out.Recipient = event.Recipient.Hex()
			out.Amount = units.Format(event.Amount, decimals)
			out.Fee = units.Format(event.Fee, decimals)
			if event.DestChainID.IsUint64() {
				out.DestChainID = event.DestChainID.Uint64()
			}
			break
		}
	}
	return printJSON(cmd.OutOrStdout(), out)
}
