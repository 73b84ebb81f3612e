package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TBURN_RPC", "")
	t.Setenv("TBURN_PRIVATE_KEY", "")
	t.Setenv("TBURN_MNEMONIC", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestQuoteSwapWithoutRPCUsesFallback(t *testing.T) {
	out, err := runCLI(t, "quote", "swap", "--in", "TBURN", "--out", "USDT", "--amount", "100")
	require.NoError(t, err)

	var q model.SwapQuote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	require.Equal(t, "125.000000", q.AmountOut)
	require.Equal(t, model.QuoteSourceFallback, q.Source)
}

func TestQuoteBridgeWithoutRPCUsesFallback(t *testing.T) {
	out, err := runCLI(t, "quote", "bridge", "--from-chain", "ethereum", "--amount", "1000")
	require.NoError(t, err)

	var q model.BridgeQuote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	require.Equal(t, "999.000000", q.AmountReceived)
	require.Equal(t, uint64(120), q.EstimatedTime)
}

func TestSwapRequiresRPC(t *testing.T) {
	_, err := runCLI(t, "swap", "--in", "TBURN", "--out", "USDT", "--amount", "1")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "rpc url is required"), err.Error())
}

func TestChainsListsRegistry(t *testing.T) {
	out, err := runCLI(t, "chains")
	require.NoError(t, err)

	var chains []model.BridgeChain
	require.NoError(t, json.Unmarshal([]byte(out), &chains))
	require.Len(t, chains, 4)
	require.Equal(t, "ethereum", chains[0].Key)
}
