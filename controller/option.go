package controller

import "log/slog"

// ReactivationPolicy decides what Activate does with an already active bridge.
type ReactivationPolicy int

const (
	// ReactivateForward sends the command again and re-confirms the active state.
	ReactivateForward ReactivationPolicy = iota
	// ReactivateSkip returns the bridge as is without contacting the backend.
	ReactivateSkip
	// ReactivateReject fails with *model.TransitionError.
	ReactivateReject
)

func (p ReactivationPolicy) String() string {
	switch p {
	case ReactivateSkip:
		return "skip"
	case ReactivateReject:
		return "reject"
	}
	return "forward"
}

// Option represents option
type Option func(c *Controller)

// WithReactivationPolicy sets the re-activation policy.
func WithReactivationPolicy(policy ReactivationPolicy) Option {
	return func(c *Controller) {
		c.reactivation = policy
	}
}

// WithListener registers an observer of intent outcomes.
func WithListener(listener Listener) Option {
	return func(c *Controller) {
		if listener != nil {
			c.listeners = append(c.listeners, listener)
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}
