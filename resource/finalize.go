package resource

import (
	"context"
	"io"
)

// Finalize runs the cleanup method of v, if it has one.
// ContextCloser wins over io.Closer, which wins over Dropper.
func Finalize(ctx context.Context, v any) error {
	switch r := v.(type) {
	case ContextCloser:
		return r.Close(ctx)
	case io.Closer:
		return r.Close()
	case Dropper:
		r.Drop()
		return nil
	default:
		return nil
	}
}
