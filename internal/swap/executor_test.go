package swap

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/approval"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/quote"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet/wallettest"
)

var (
	account = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	fixedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

type approvalCall struct {
	owner, spender common.Address
	asset          model.AssetDescriptor
	required       *big.Int
}

type recordingApprover struct {
	calls []approvalCall
	err   error
}

func (r *recordingApprover) EnsureAllowance(_ context.Context, owner, spender common.Address, asset model.AssetDescriptor, required *big.Int) error {
	r.calls = append(r.calls, approvalCall{owner: owner, spender: spender, asset: asset, required: required})
	return r.err
}

type fixture struct {
	reg      *registry.Registry
	session  *wallettest.Session
	approver *recordingApprover
	exec     *Executor
}

func newFixture() *fixture {
	reg := registry.Default()
	session := wallettest.New(reg.HomeChainID(), account)
	approver := &recordingApprover{}
	engine := quote.NewEngine(reg, session, nil)
	return &fixture{
		reg:      reg,
		session:  session,
		approver: approver,
		exec:     NewExecutor(reg, engine, approver, session, nil, WithClock(func() time.Time { return fixedAt })),
	}
}

func decodeCall(t *testing.T, data []byte) (string, []interface{}) {
	t.Helper()
	routerABI, err := dex.RouterABI()
	require.NoError(t, err)
	method, err := routerABI.MethodById(data[:4])
	require.NoError(t, err)
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	return method.Name, args
}

func TestExecuteSwapNativeInSkipsApproval(t *testing.T) {
	f := newFixture()

	res := f.exec.ExecuteSwap(context.Background(), "TBURN", "USDT", "100", 50)
	require.True(t, res.Success, res.Error)
	require.Equal(t, "125.000000", res.AmountOut)
	require.Equal(t, wallettest.TxHash(0).Hex(), res.TransactionHash)
	require.Empty(t, f.approver.calls)

	sent := f.session.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, f.reg.Contracts().Router, sent[0].To)
	require.Equal(t, "100000000000000000000", sent[0].Value.String())

	name, args := decodeCall(t, sent[0].Data)
	require.Equal(t, "swapExactETHForTokens", name)
	require.Equal(t, "124375000", args[0].(*big.Int).String())
	path := args[1].([]common.Address)
	require.Equal(t, []common.Address{f.reg.Contracts().WrappedNative, mustAsset(t, f.reg, "USDT").Address}, path)
	require.Equal(t, account, args[2])
	require.Equal(t, fixedAt.Add(1200*time.Second).Unix(), args[3].(*big.Int).Int64())
}

func TestExecuteSwapTokenToTokenApprovesRouter(t *testing.T) {
	f := newFixture()

	res := f.exec.ExecuteSwap(context.Background(), "USDT", "WETH", "3500", 50)
	require.True(t, res.Success, res.Error)

	require.Len(t, f.approver.calls, 1)
	call := f.approver.calls[0]
	require.Equal(t, f.reg.Contracts().Router, call.spender)
	require.Equal(t, account, call.owner)
	require.Equal(t, "USDT", call.asset.Symbol)
	require.Equal(t, "3500000000", call.required.String())

	sent := f.session.Sent()
	require.Len(t, sent, 1)
	require.Nil(t, sent[0].Value)
	name, args := decodeCall(t, sent[0].Data)
	require.Equal(t, "swapExactTokensForTokens", name)
	require.Equal(t, "3500000000", args[0].(*big.Int).String())
	require.Len(t, args[2].([]common.Address), 3)
}

func TestExecuteSwapTokenToNative(t *testing.T) {
	f := newFixture()

	res := f.exec.ExecuteSwap(context.Background(), "USDC", "TBURN", "10", 0)
	require.True(t, res.Success, res.Error)
	require.Len(t, f.approver.calls, 1)

	name, args := decodeCall(t, f.session.Sent()[0].Data)
	require.Equal(t, "swapExactTokensForETH", name)
	path := args[2].([]common.Address)
	require.Equal(t, f.reg.Contracts().WrappedNative, path[len(path)-1])
}

func TestExecuteSwapWithGateApprovesUnlimitedForRouter(t *testing.T) {
	reg := registry.Default()
	session := wallettest.New(reg.HomeChainID(), account)
	usdt := mustAsset(t, reg, "USDT")
	session.ReturnBigInt(usdt.Address, "allowance", big.NewInt(0))

	engine := quote.NewEngine(reg, session, nil)
	exec := NewExecutor(reg, engine, approval.NewGate(session, nil), session, nil)

	res := exec.ExecuteSwap(context.Background(), "USDT", "USDC", "1", 50)
	require.True(t, res.Success, res.Error)

	reads := session.ReadsOf("allowance")
	require.Len(t, reads, 1)
	require.Equal(t, reg.Contracts().Router, reads[0].Args[1])

	sent := session.Sent()
	require.Len(t, sent, 2)
	require.Equal(t, usdt.Address, sent[0].To)
	require.Equal(t, reg.Contracts().Router, sent[1].To)
}

func TestExecuteSwapCustomSlippage(t *testing.T) {
	f := newFixture()

	res := f.exec.ExecuteSwap(context.Background(), "TBURN", "USDT", "100", 100)
	require.True(t, res.Success, res.Error)

	_, args := decodeCall(t, f.session.Sent()[0].Data)
	require.Equal(t, "123750000", args[0].(*big.Int).String())
}

func TestExecuteSwapWalletNotConnected(t *testing.T) {
	f := newFixture()
	f.session.Connected = false

	res := f.exec.ExecuteSwap(context.Background(), "TBURN", "USDT", "1", 50)
	require.False(t, res.Success)
	require.Contains(t, res.Error, model.ErrWalletNotConnected.Error())
	require.Empty(t, f.session.Sent())
	require.Empty(t, f.session.Reads())
}

func TestExecuteSwapInputErrorsAreResults(t *testing.T) {
	f := newFixture()

	res := f.exec.ExecuteSwap(context.Background(), "DOGE", "USDT", "1", 50)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "unknown asset")

	res = f.exec.ExecuteSwap(context.Background(), "USDT", "USDC", "abc", 50)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "invalid amount")
	require.Empty(t, f.session.Sent())
}

func TestExecuteSwapApprovalFailureStopsSwap(t *testing.T) {
	f := newFixture()
	f.approver.err = model.ErrApprovalFailed

	res := f.exec.ExecuteSwap(context.Background(), "USDT", "USDC", "1", 50)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "approval failed")
	require.Empty(t, f.session.Sent())
}

func TestExecuteSwapReverted(t *testing.T) {
	f := newFixture()
	f.session.Receipt = func(n int, _ wallet.TxRequest) (*types.Receipt, error) {
		return &types.Receipt{Status: types.ReceiptStatusFailed, TxHash: wallettest.TxHash(n)}, nil
	}

	res := f.exec.ExecuteSwap(context.Background(), "TBURN", "USDT", "1", 50)
	require.False(t, res.Success)
	require.Equal(t, wallettest.TxHash(0).Hex(), res.TransactionHash)
	require.Contains(t, res.Error, "reverted")
	require.Empty(t, res.AmountOut)
}

func TestExecuteSwapSendError(t *testing.T) {
	f := newFixture()
	f.session.Receipt = func(int, wallet.TxRequest) (*types.Receipt, error) {
		return nil, errors.New("user rejected transaction")
	}

	res := f.exec.ExecuteSwap(context.Background(), "TBURN", "USDT", "1", 50)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "user rejected transaction")
}

func mustAsset(t *testing.T, reg *registry.Registry, symbol string) model.AssetDescriptor {
	t.Helper()
	a, err := reg.Asset(symbol)
	require.NoError(t, err)
	return a
}
