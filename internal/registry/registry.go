// Package registry holds the static asset, bridge-chain and contract registries.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

// HomeChainID is the TBURN mainnet chain id used when no override is configured.
const HomeChainID uint64 = 5800

// NativeSymbol is the symbol of the home chain's native coin.
const NativeSymbol = "TBURN"

// HomeChainName is the display name of the bridge destination.
const HomeChainName = "TBURN Chain"

// Contracts holds the fixed contract addresses on the home chain.
type Contracts struct {
	Router        common.Address
	Factory       common.Address
	Bridge        common.Address
	WrappedNative common.Address
}

var defaultContracts = Contracts{
	Router:        common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
	Factory:       common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
	Bridge:        common.HexToAddress("0x3ee18B2214AFF97000D974cf647E7C347E8fa585"),
	WrappedNative: common.HexToAddress("0x4200000000000000000000000000000000000006"),
}

func defaultAssets(wrapped common.Address, home uint64) []model.AssetDescriptor {
	return []model.AssetDescriptor{
		{Symbol: NativeSymbol, Address: common.Address{}, Decimals: 18, HomeChainID: home},
		{Symbol: "WTBURN", Address: wrapped, Decimals: 18, HomeChainID: home},
		{Symbol: "USDT", Address: common.HexToAddress("0x55d398326f99059fF775485246999027B3197955"), Decimals: 6},
		{Symbol: "USDC", Address: common.HexToAddress("0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d"), Decimals: 6},
		{Symbol: "WETH", Address: common.HexToAddress("0x2170Ed0880ac9A755fd29B2688956BD959F933F8"), Decimals: 18},
		{Symbol: "WBTC", Address: common.HexToAddress("0x7130d2A12B9BCbFAe4f2634d864A1Ee1Ce3Ead9c"), Decimals: 8},
	}
}

var defaultBridgeChains = []model.BridgeChain{
	{Key: "ethereum", ChainID: 1, BridgeAddress: common.HexToAddress("0x3ee18B2214AFF97000D974cf647E7C347E8fa585"), DisplayName: "Ethereum"},
	{Key: "bsc", ChainID: 56, BridgeAddress: common.HexToAddress("0xB6F6D86a8f9879A9c87f643768d9efc38c1Da6E7"), DisplayName: "BNB Smart Chain"},
	{Key: "polygon", ChainID: 137, BridgeAddress: common.HexToAddress("0x5a58505a96D1dbf8dF91cB21B54419FC36e93fdE"), DisplayName: "Polygon"},
	{Key: "arbitrum", ChainID: 42161, BridgeAddress: common.HexToAddress("0x0B2402144Bb366A632D14B83F244D2e0e21bD39c"), DisplayName: "Arbitrum One"},
}

// Overrides replaces registry defaults. Zero values keep the default.
type Overrides struct {
	HomeChainID   uint64
	Router        common.Address
	Factory       common.Address
	// Bridge replaces the home bridge and the bridge address of every
	// destination chain entry.
	Bridge        common.Address
	WrappedNative common.Address
}

// Registry is built once at start and only read afterwards.
type Registry struct {
	homeChainID uint64
	contracts   Contracts
	assets      map[string]model.AssetDescriptor
	chains      map[string]model.BridgeChain
}

// New builds a registry from defaults plus overrides.
func New(o Overrides) *Registry {
	contracts := defaultContracts
	if o.Router != (common.Address{}) {
		contracts.Router = o.Router
	}
	if o.Factory != (common.Address{}) {
		contracts.Factory = o.Factory
	}
	if o.Bridge != (common.Address{}) {
		contracts.Bridge = o.Bridge
	}
	if o.WrappedNative != (common.Address{}) {
		contracts.WrappedNative = o.WrappedNative
	}
	home := HomeChainID
	if o.HomeChainID != 0 {
		home = o.HomeChainID
	}

	r := &Registry{
		homeChainID: home,
		contracts:   contracts,
		assets:      make(map[string]model.AssetDescriptor),
		chains:      make(map[string]model.BridgeChain),
	}
	for _, a := range defaultAssets(contracts.WrappedNative, home) {
		r.assets[strings.ToUpper(a.Symbol)] = a
	}
	for _, c := range defaultBridgeChains {
		if o.Bridge != (common.Address{}) {
			c.BridgeAddress = o.Bridge
		}
		r.chains[strings.ToLower(c.Key)] = c
	}
	return r
}

// Default returns a registry with no overrides.
func Default() *Registry {
	return New(Overrides{})
}

func (r *Registry) HomeChainID() uint64 { return r.homeChainID }

func (r *Registry) Contracts() Contracts { return r.contracts }

// Asset looks up a descriptor by symbol, case-insensitively.
func (r *Registry) Asset(symbol string) (model.AssetDescriptor, error) {
	a, ok := r.assets[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return model.AssetDescriptor{}, fmt.Errorf("%w: %s", model.ErrUnknownAsset, symbol)
	}
	return a, nil
}

// Chain looks up a supported bridge source chain by key.
func (r *Registry) Chain(key string) (model.BridgeChain, error) {
	c, ok := r.chains[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return model.BridgeChain{}, fmt.Errorf("%w: %s", model.ErrUnsupportedChain, key)
	}
	return c, nil
}

// Assets returns all descriptors sorted by symbol.
func (r *Registry) Assets() []model.AssetDescriptor {
	out := make([]model.AssetDescriptor, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Chains returns all bridge chains sorted by chain id.
func (r *Registry) Chains() []model.BridgeChain {
	out := make([]model.BridgeChain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// Native returns the home chain's native asset descriptor.
func (r *Registry) Native() model.AssetDescriptor {
	return r.assets[NativeSymbol]
}
