// Package quote prices swaps and bridge transfers, preferring on-chain reads
// and falling back to a static reference-rate table.
package quote

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

// ResolvePath returns the router hop sequence for a swap. The wrapped native
// asset is the only routing hub.
func ResolvePath(tokenIn, tokenOut model.AssetDescriptor, wrappedNative common.Address) []common.Address {
	switch {
	case tokenIn.IsNative():
		return []common.Address{wrappedNative, tokenOut.Address}
	case tokenOut.IsNative():
		return []common.Address{tokenIn.Address, wrappedNative}
	default:
		return []common.Address{tokenIn.Address, wrappedNative, tokenOut.Address}
	}
}
