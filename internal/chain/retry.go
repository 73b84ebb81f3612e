package chain

import (
	"context"
	"fmt"
	"time"
)

// withRetry runs fn until it succeeds, doubling the delay between attempts.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

// Dial connects to rpcURL and reads the chain id, retrying the handshake.
// Only connection setup is retried; calls made through the client are not.
func Dial(ctx context.Context, rpcURL string, maxRetries int, baseDelay time.Duration) (*Client, uint64, error) {
	var (
		client  *Client
		chainID uint64
	)
	err := withRetry(ctx, maxRetries, baseDelay, func(ctx context.Context) error {
		c, err := NewClient(ctx, rpcURL)
		if err != nil {
			return err
		}
		id, err := c.GetChainID(ctx)
		if err != nil {
			c.Close()
			return err
		}
		client, chainID = c, id.Uint64()
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("connect rpc %s: %w", rpcURL, err)
	}
	return client, chainID, nil
}
