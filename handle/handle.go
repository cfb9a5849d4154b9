package handle

import (
	"context"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/sharedptr/control"
	"github.com/wippyai/sharedptr/errors"
)

// noCopy makes go vet report copies of a Handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is a shared-ownership pointer to a value of type T.
//
// The zero value is an empty handle. Handles must be used through
// pointers: copying the struct would add an owner without retaining.
// Use Clone or CopyFrom to share, Take or MoveFrom to transfer.
// Every non-empty handle must eventually be released.
//
// Not thread-safe.
type Handle[T any] struct {
	_     noCopy
	block *control.Block[T]
	name  string
}

// Empty returns a handle that references nothing.
func Empty[T any]() *Handle[T] {
	return &Handle[T]{}
}

// New takes ownership of v and returns the first handle on it.
// v must not be owned by any other handle or block. A nil v yields
// an empty handle.
func New[T any](v *T) *Handle[T] {
	return NewWithOptions(v, control.DefaultOptions())
}

// NewWithOptions is New with block options.
func NewWithOptions[T any](v *T, opts control.Options) *Handle[T] {
	h := &Handle[T]{}
	if v == nil {
		Logger().Debug("handle constructed from nil, left empty",
			zap.String("type", reflect.TypeOf((*T)(nil)).Elem().String()))
		return h
	}
	h.block = control.New(v, opts)
	Logger().Debug("handle direct construct", h.fields()...)
	return h
}

// Clone returns a new handle sharing h's value. Cloning a nil handle
// yields an empty one.
func (h *Handle[T]) Clone() *Handle[T] {
	c := &Handle[T]{}
	c.attach(h.target())
	Logger().Debug("handle copy construct", c.fields()...)
	return c
}

// Take returns a new handle that takes over h's reference. h is left empty
// and the count is unchanged.
func (h *Handle[T]) Take() *Handle[T] {
	t := &Handle[T]{block: h.target()}
	if h != nil {
		h.block = nil
	}
	Logger().Debug("handle move construct", t.fields()...)
	return t
}

// CopyFrom makes h share o's value. h's previous value is released, and
// destroyed if h was its last owner. A nil or empty o empties h.
// Copying from itself, or from a handle on the same block, is a no-op.
//
// The error is the finalizer error of the released value, if any.
func (h *Handle[T]) CopyFrom(o *Handle[T]) error {
	src := o.target()
	if h == o || h.block == src {
		return nil
	}

	old := h.block
	h.attach(src)
	Logger().Debug("handle copy assign", h.fields()...)

	return releaseBlock(context.Background(), old)
}

// MoveFrom transfers o's reference to h and leaves o empty. h's previous
// value is released, and destroyed if h was its last owner.
// Moving from itself leaves h empty.
//
// The error is the finalizer error of the released value, if any.
func (h *Handle[T]) MoveFrom(o *Handle[T]) error {
	if h == o {
		Logger().Debug("handle self move assign", h.fields()...)
		return h.Release()
	}

	old := h.block
	h.block = o.target()
	if o != nil {
		o.block = nil
	}
	Logger().Debug("handle move assign", h.fields()...)

	return releaseBlock(context.Background(), old)
}

// Release drops h's reference and leaves it empty. If h was the last
// owner the value is finalized. Releasing an empty handle is a no-op.
func (h *Handle[T]) Release() error {
	return h.ReleaseContext(context.Background())
}

// ReleaseContext is Release with a context for the value's finalizer.
func (h *Handle[T]) ReleaseContext(ctx context.Context) error {
	if h.block == nil {
		return nil
	}
	Logger().Debug("handle destruct", h.fields()...)

	b := h.block
	h.block = nil
	return releaseBlock(ctx, b)
}

// Swap exchanges the references of h and o. Counts are unchanged.
// A nil o has no slot to receive h's reference, so h is left as is.
func (h *Handle[T]) Swap(o *Handle[T]) {
	if o == nil {
		return
	}
	h.block, o.block = o.block, h.block
}

// Get returns a non-owning pointer to the value, or nil when empty.
func (h *Handle[T]) Get() *T {
	if h.block == nil {
		return nil
	}
	return h.block.Value()
}

// Deref returns the value, or an error matching errors.ErrNullDereference
// when h is empty.
func (h *Handle[T]) Deref() (*T, error) {
	if h.block == nil {
		return nil, errors.NullDereference(reflect.TypeOf((*T)(nil)).Elem().String(), h.name)
	}
	return h.block.Value(), nil
}

// MustDeref is like Deref but panics when h is empty.
func (h *Handle[T]) MustDeref() *T {
	v, err := h.Deref()
	if err != nil {
		panic(err)
	}
	return v
}

// UseCount returns the number of handles sharing h's value, or 0 when empty.
func (h *Handle[T]) UseCount() uint32 {
	if h.block == nil {
		return 0
	}
	return h.block.Count()
}

// BlockID returns the identifier of h's control block, or 0 when empty.
func (h *Handle[T]) BlockID() uint64 {
	if h.block == nil {
		return 0
	}
	return h.block.ID()
}

// IsEmpty reports whether h references nothing.
func (h *Handle[T]) IsEmpty() bool {
	return h.block == nil
}

// SameBlock reports whether h and o share a value. Two empty handles do not.
func (h *Handle[T]) SameBlock(o *Handle[T]) bool {
	return h.block != nil && h.block == o.target()
}

// Name returns the diagnostic name of h.
func (h *Handle[T]) Name() string {
	return h.name
}

// SetName sets the diagnostic name of h. Names are never shared by
// Clone, Take, CopyFrom or MoveFrom.
func (h *Handle[T]) SetName(name string) {
	Logger().Debug("handle rename", zap.String("from", h.name), zap.String("to", name))
	h.name = name
}

// String renders h like "A->ref_count$2", or "A->nullptr" when empty.
func (h *Handle[T]) String() string {
	name := h.name
	if name == "" {
		name = "Nameless"
	}
	if h.block == nil {
		return name + "->nullptr"
	}
	return name + "->" + h.block.String()
}

func (h *Handle[T]) target() *control.Block[T] {
	if h == nil {
		return nil
	}
	return h.block
}

// attach points h at b and retains it. h's previous reference is not released.
func (h *Handle[T]) attach(b *control.Block[T]) {
	h.block = b
	if b != nil {
		b.Retain()
	}
}

func (h *Handle[T]) fields() []zap.Field {
	return []zap.Field{
		zap.String("handle", h.name),
		zap.Uint64("block", h.BlockID()),
		zap.Uint32("count", h.UseCount()),
	}
}

func releaseBlock[T any](ctx context.Context, b *control.Block[T]) error {
	if b == nil {
		return nil
	}
	if b.Release() > 0 {
		return nil
	}
	return b.Destroy(ctx)
}
