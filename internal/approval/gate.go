// Package approval makes sure a spender may move an ERC20 balance before a swap.
package approval

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/dex"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
)

// UnlimitedAllowance (2^256-1) is approved whenever the current allowance is short.
var UnlimitedAllowance = new(big.Int).Set(math.MaxBig256)

// Gate checks and tops up ERC20 allowances. Allowances are never cached.
type Gate struct {
	session wallet.Session
	logger  *zap.Logger
}

// NewGate returns a gate that reads and approves through session.
func NewGate(session wallet.Session, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{session: session, logger: logger}
}

// Allowance reads the current allowance of owner for spender.
func (g *Gate) Allowance(ctx context.Context, owner, spender common.Address, asset model.AssetDescriptor) (*big.Int, error) {
	erc20, err := dex.ERC20ABI()
	if err != nil {
		return nil, err
	}
	values, err := g.session.Read(ctx, asset.Address, erc20, "allowance", owner, spender)
	if err != nil {
		return nil, fmt.Errorf("read allowance: %w", err)
	}
	return dex.FirstBigInt(values)
}

// EnsureAllowance returns once spender may move at least required of asset on
// behalf of owner, submitting and confirming an unlimited approval if needed.
func (g *Gate) EnsureAllowance(ctx context.Context, owner, spender common.Address, asset model.AssetDescriptor, required *big.Int) error {
	if asset.IsNative() {
		return fmt.Errorf("%w: native %s needs no approval", model.ErrInvalidOperation, asset.Symbol)
	}
	if required == nil {
		required = new(big.Int)
	}

	current, err := g.Allowance(ctx, owner, spender, asset)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrApprovalFailed, err)
	}
	if current.Cmp(required) >= 0 {
		g.logger.Debug("allowance sufficient",
			zap.String("asset", asset.Symbol),
			zap.String("spender", spender.Hex()),
			zap.String("allowance", current.String()),
		)
		return nil
	}

	erc20, err := dex.ERC20ABI()
	if err != nil {
		return err
	}
	data, err := erc20.Pack("approve", spender, UnlimitedAllowance)
	if err != nil {
		return fmt.Errorf("pack approve: %w", err)
	}

	g.logger.Info("submitting approval",
		zap.String("asset", asset.Symbol),
		zap.String("spender", spender.Hex()),
		zap.String("allowance", current.String()),
		zap.String("required", required.String()),
	)
	receipt, err := g.session.SignAndSend(ctx, wallet.TxRequest{To: asset.Address, Data: data})
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrApprovalFailed, err)
	}
	if receipt == nil || receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: approval tx %s reverted", model.ErrApprovalFailed, receiptHash(receipt))
	}
	return nil
}

func receiptHash(r *types.Receipt) string {
	if r == nil {
		return "<none>"
	}
	return r.TxHash.Hex()
}
