package main

import (
	"context"
	stderrors "errors"

	"github.com/dc0d/onexit"

	"github.com/wippyai/sharedptr/errors"
)

// errExitSignal is the cancellation cause set when the process is signalled.
var errExitSignal = stderrors.New("exit signal")

// exitContext returns a context cancelled by the onexit hook. The hook runs
// on the signal goroutine and only cancels; sessions are closed by whoever
// owns them once they see ctx done.
func exitContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	onexit.Register(func() { cancel(errExitSignal) })
	return ctx, func() { cancel(context.Canceled) }
}

// interrupted returns an interrupted error once ctx is done, nil before.
func interrupted(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	return errors.Interrupted(errors.PhaseScript, context.Cause(ctx))
}
