package model

import "errors"

// Input errors are detected before any network call.
var (
	ErrUnknownAsset     = errors.New("unknown asset")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Transactional errors are reported through SwapResult / BridgeResult.
var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrWrongNetwork       = errors.New("wrong network")
	ErrApprovalFailed     = errors.New("approval failed")
	ErrFeeExceedsAmount   = errors.New("bridge fee exceeds amount")
	ErrTxReverted         = errors.New("transaction reverted")
)
