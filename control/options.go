package control

import (
	"go.uber.org/zap"

	"github.com/wippyai/sharedptr/resource"
)

// Options configures block behavior.
type Options struct {
	// Observer receives every lifecycle event of the block. May be nil.
	Observer resource.Observer
	// Logger overrides the package logger for this block. May be nil.
	Logger *zap.Logger
}

// DefaultOptions returns default block configuration.
func DefaultOptions() Options {
	return Options{}
}

// With returns a copy of o that also notifies obs.
func (o Options) With(obs resource.Observer) Options {
	switch {
	case obs == nil:
	case o.Observer == nil:
		o.Observer = obs
	default:
		o.Observer = resource.Observers{o.Observer, obs}
	}
	return o
}
