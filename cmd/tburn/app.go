package main

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/chain"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/config"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/defi"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/gas"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/storage"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/storage/postgres"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	reg     *registry.Registry
	client  *chain.Client
	session *wallet.RPCSession
	svc     *defi.Service
	closers []func()
}

type appOptions struct {
	requireRPC bool
	requireKey bool
	journal    bool
}

func newApp(ctx context.Context, cmd *cobra.Command, opts appOptions) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	overrides, err := cfg.RegistryOverrides()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.reg = registry.New(overrides)

	if cfg.RPCURL == "" && opts.requireRPC {
		a.Close()
		return nil, fmt.Errorf("rpc url is required")
	}

	key, err := loadKey(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if key == nil && opts.requireKey {
		a.Close()
		return nil, fmt.Errorf("private-key or mnemonic is required")
	}

	if cfg.RPCURL != "" {
		client, chainID, err := chain.Dial(ctx, cfg.RPCURL, cfg.DialRetries, cfg.DialBackoff)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.client = client
		a.closers = append(a.closers, client.Close)
		a.session = wallet.NewRPCSession(client, gas.NewEstimator(client), chainID, key, logger.Named("wallet"))
		logger.Debug("rpc connected",
			zap.String("rpc", cfg.RPCURL),
			zap.Uint64("chain_id", chainID),
			zap.Bool("signer", key != nil),
		)
	}

	var journal storage.Journal
	if opts.journal {
		journal, err = a.openJournal(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	svcOpts := defi.Options{Registry: a.reg, Journal: journal, Logger: logger}
	if a.session != nil {
		svcOpts.Session = a.session
	}
	a.svc = defi.NewService(svcOpts)
	return a, nil
}

func (a *app) openJournal(ctx context.Context) (storage.Journal, error) {
	var journals storage.MultiJournal
	if a.cfg.Journal != "" {
		journals = append(journals, storage.NewJSONLJournal(a.cfg.Journal))
	}
	if a.cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, a.cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		journals = append(journals, store)
	}
	if len(journals) == 0 {
		return nil, nil
	}
	return journals, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func loadKey(cfg config.Config) (*ecdsa.PrivateKey, error) {
	switch {
	case cfg.Mnemonic != "":
		return wallet.DeriveKey(cfg.Mnemonic, cfg.AccountIndex)
	case cfg.PrivateKey != "":
		return wallet.ParseKey(cfg.PrivateKey)
	default:
		return nil, nil
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
