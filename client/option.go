package client

import (
	"log/slog"
	"time"
)

// DefaultTimeout bounds every call unless overridden with WithTimeout.
const DefaultTimeout = 30 * time.Second

// Option represents option
type Option func(c *Client)

// WithTimeout sets the per call timeout; zero or negative disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetry retries calls that got no response at all, up to attempts tries in
// total, waiting backoff between tries. Backend faults are never retried, and
// neither is bridge creation.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts < 1 {
			attempts = 1
		}
		c.attempts = attempts
		c.backoff = backoff
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
