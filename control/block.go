package control

import (
	"context"
	"reflect"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/sharedptr/errors"
	"github.com/wippyai/sharedptr/resource"
)

var nextID atomic.Uint64

// noCopy makes go vet report copies of a Block.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Block is the control block shared by every handle on one value.
// It is the only owner of the value and holds the live reference count.
// Not thread-safe.
type Block[T any] struct {
	_         noCopy
	value     *T
	opts      Options
	id        uint64
	count     uint32
	destroyed bool
}

// New takes ownership of v and returns a block with count 1.
// v must be non-nil and not owned by another block; a nil v panics.
func New[T any](v *T, opts Options) *Block[T] {
	if v == nil {
		panic(errors.NilResource(typeName[T]()))
	}

	b := &Block[T]{
		value: v,
		opts:  opts,
		id:    nextID.Add(1),
		count: 1,
	}

	b.log().Debug("block created",
		zap.Uint64("block", b.id),
		zap.String("type", typeName[T]()))
	b.notify(resource.EventCreated, v)

	return b
}

// NewWithDefaults creates a block with default options.
func NewWithDefaults[T any](v *T) *Block[T] {
	return New(v, DefaultOptions())
}

// Retain increments the count and returns the new value.
// Retaining a block that already reached zero panics.
func (b *Block[T]) Retain() uint32 {
	if b.destroyed || b.count == 0 {
		panic(errors.RetainReleased(typeName[T](), b.id))
	}

	b.count++
	b.log().Debug("block retained",
		zap.Uint64("block", b.id),
		zap.Uint32("count", b.count))
	b.notify(resource.EventRetained, b.value)

	return b.count
}

// Release decrements the count and returns the new value.
// When it returns 0 the caller must Destroy the block.
// Releasing past zero panics.
func (b *Block[T]) Release() uint32 {
	if b.count == 0 {
		panic(errors.OverRelease(typeName[T](), b.id))
	}

	b.count--
	b.log().Debug("block released",
		zap.Uint64("block", b.id),
		zap.Uint32("count", b.count))
	b.notify(resource.EventReleased, b.value)

	return b.count
}

// Destroy finalizes the value. It is only valid once Release returned 0,
// and only once; otherwise an error is returned and nothing happens.
func (b *Block[T]) Destroy(ctx context.Context) error {
	if b.destroyed {
		return errors.DoubleDestroy(typeName[T](), b.id)
	}
	if b.count != 0 {
		return errors.StillReferenced(typeName[T](), b.id, b.count)
	}

	v := b.value
	b.value = nil
	b.destroyed = true

	b.log().Debug("block destroyed",
		zap.Uint64("block", b.id),
		zap.String("type", typeName[T]()))

	err := resource.Finalize(ctx, v)
	b.notify(resource.EventDestroyed, v)

	if err != nil {
		b.log().Warn("finalizer failed",
			zap.Uint64("block", b.id),
			zap.String("type", typeName[T]()),
			zap.Error(err))
		return errors.DestroyFailed(typeName[T](), err)
	}
	return nil
}

// Value returns a non-owning pointer to the value, or nil once destroyed.
func (b *Block[T]) Value() *T {
	return b.value
}

// Count returns the live reference count.
func (b *Block[T]) Count() uint32 {
	return b.count
}

// ID returns the block's process-unique identifier.
func (b *Block[T]) ID() uint64 {
	return b.id
}

// Destroyed reports whether Destroy has run.
func (b *Block[T]) Destroyed() bool {
	return b.destroyed
}

func (b *Block[T]) String() string {
	return "ref_count$" + strconv.FormatUint(uint64(b.count), 10)
}

func (b *Block[T]) log() *zap.Logger {
	if b.opts.Logger != nil {
		return b.opts.Logger
	}
	return Logger()
}

func (b *Block[T]) notify(typ resource.EventType, v *T) {
	if b.opts.Observer == nil {
		return
	}
	b.opts.Observer.OnResourceEvent(resource.Event{
		Type:     typ,
		Block:    b.id,
		Count:    b.count,
		TypeName: typeName[T](),
		Value:    v,
	})
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
