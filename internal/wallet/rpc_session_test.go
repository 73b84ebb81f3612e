package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/gas"
)

type stubRPC struct {
	callResp []byte
	calls    []ethereum.CallMsg
	nonce    uint64
	sent     []*types.Transaction
	gas      uint64
}

func (s *stubRPC) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	s.calls = append(s.calls, msg)
	return s.callResp, nil
}

func (s *stubRPC) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return s.nonce, nil
}

func (s *stubRPC) SendTransaction(_ context.Context, tx *types.Transaction) error {
	s.sent = append(s.sent, tx)
	return nil
}

func (s *stubRPC) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if len(s.sent) == 0 {
		return nil, ethereum.NotFound
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, GasUsed: 21000}, nil
}

func (s *stubRPC) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}

func (s *stubRPC) FeeData(context.Context) (*big.Int, *big.Int, error) {
	return big.NewInt(20 * params.GWei), big.NewInt(2 * params.GWei), nil
}

func (s *stubRPC) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return s.gas, nil
}

func TestRPCSessionRead(t *testing.T) {
	erc20, err := dex.ERC20ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	resp, err := erc20.Methods["allowance"].Outputs.Pack(big.NewInt(42))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	rpc := &stubRPC{callResp: resp}
	session := NewRPCSession(rpc, nil, 5800, nil, nil)

	token := common.HexToAddress("0x2222222222222222222222222222222222222222")
	values, err := session.Read(context.Background(), token, erc20, "allowance", common.Address{}, common.Address{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got, err := dex.FirstBigInt(values)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got.Int64() != 42 {
		t.Fatalf("allowance mismatch: %s", got)
	}
	if len(rpc.calls) != 1 || *rpc.calls[0].To != token {
		t.Fatalf("call target mismatch")
	}
	if session.IsConnected() {
		t.Fatalf("session without key must not be connected")
	}
}

func TestRPCSessionSignAndSend(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	rpc := &stubRPC{nonce: 7, gas: 100000}
	session := NewRPCSession(rpc, gas.NewEstimator(rpc), 5800, key, nil)
	if !session.IsConnected() {
		t.Fatalf("session with key must be connected")
	}

	to := common.HexToAddress("0x3333333333333333333333333333333333333333")
	receipt, err := session.SignAndSend(context.Background(), TxRequest{To: to, Value: big.NewInt(5)})
	if err != nil {
		t.Fatalf("sign and send: %v", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		t.Fatalf("unexpected status %d", receipt.Status)
	}
	if len(rpc.sent) != 1 {
		t.Fatalf("expected one tx, got %d", len(rpc.sent))
	}

	tx := rpc.sent[0]
	if tx.Nonce() != 7 || tx.Gas() != 115000 {
		t.Fatalf("nonce/gas mismatch: %d %d", tx.Nonce(), tx.Gas())
	}
	if tx.ChainId().Uint64() != 5800 {
		t.Fatalf("chain id mismatch: %s", tx.ChainId())
	}
	sender, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		t.Fatalf("sender: %v", err)
	}
	if sender != session.Address() {
		t.Fatalf("sender mismatch: %s != %s", sender.Hex(), session.Address().Hex())
	}
}
