// Package defi wires quoting, approvals and the executors into one service.
package defi

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/approval"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/bridge"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/quote"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/storage"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/swap"
	"github.com/trustburn79-droid/TburnChain-sub019/internal/wallet"
)

// journalTimeout bounds an outcome write once the caller's context is gone.
const journalTimeout = 10 * time.Second

// Options holds the service dependencies. Only Registry is required.
type Options struct {
	Registry *registry.Registry
	Session  wallet.Session
	Journal  storage.Journal
	Logger   *zap.Logger
	Now      func() time.Time
}

// Service is created once at start and passed to callers.
type Service struct {
	session wallet.Session
	journal storage.Journal
	logger  *zap.Logger
	now     func() time.Time

	engine  *quote.Engine
	swaps   *swap.Executor
	bridges *bridge.Executor
}

// NewService builds the quote engine and both executors around opts.Session.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var reader wallet.Reader
	if opts.Session != nil {
		reader = opts.Session
	}
	engine := quote.NewEngine(reg, reader, logger.Named("quote"))
	gate := approval.NewGate(opts.Session, logger.Named("approval"))

	return &Service{
		session: opts.Session,
		journal: opts.Journal,
		logger:  logger,
		now:     now,
		engine:  engine,
		swaps:   swap.NewExecutor(reg, engine, gate, opts.Session, logger.Named("swap"), swap.WithClock(now)),
		bridges: bridge.NewExecutor(reg, engine, opts.Session, logger.Named("bridge"), bridge.WithClock(now)),
	}
}

func (s *Service) GetSwapQuote(ctx context.Context, tokenIn, tokenOut, amountIn string) (model.SwapQuote, error) {
	return s.engine.GetSwapQuote(ctx, tokenIn, tokenOut, amountIn)
}

func (s *Service) GetBridgeQuote(ctx context.Context, sourceChain, amount string) (model.BridgeQuote, error) {
	return s.bridges.GetBridgeQuote(ctx, sourceChain, amount)
}

// ExecuteSwap runs a swap and journals its outcome.
func (s *Service) ExecuteSwap(ctx context.Context, tokenIn, tokenOut, amountIn string, slippageBps int) model.SwapResult {
	res := s.swaps.ExecuteSwap(ctx, tokenIn, tokenOut, amountIn, slippageBps)
	chainID, account := s.identity()
	s.record(ctx, model.SwapOutcome(chainID, account, tokenIn, tokenOut, amountIn, res, s.now()))
	return res
}

// ExecuteBridge runs a bridge transfer and journals its outcome.
func (s *Service) ExecuteBridge(ctx context.Context, sourceChain, amount string) model.BridgeResult {
	res := s.bridges.ExecuteBridge(ctx, sourceChain, amount)
	chainID, account := s.identity()
	s.record(ctx, model.BridgeOutcome(chainID, account, sourceChain, amount, res, s.now()))
	return res
}

func (s *Service) identity() (uint64, string) {
	if s.session == nil {
		return 0, ""
	}
	return s.session.ChainID(), s.session.Address().Hex()
}

// record never changes the outcome; journal failures are only logged.
// The write outlives ctx so a timed-out submission is still journaled.
func (s *Service) record(ctx context.Context, rec model.OutcomeRecord) {
	if s.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if err := s.journal.PutOutcomes(ctx, []model.OutcomeRecord{rec}); err != nil {
		s.logger.Error("journal outcome failed",
			zap.String("kind", string(rec.Kind)),
			zap.String("tx_hash", rec.TxHash),
			zap.Error(err),
		)
	}
}
