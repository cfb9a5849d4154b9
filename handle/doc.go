// Package handle provides Handle, a reference-counted shared-ownership pointer.
//
// Several handles may own one value. The value lives in a control block
// (package control) together with the number of handles referencing it; the
// last handle to let go destroys the block, which finalizes the value
// exactly once.
//
// # Operations
//
//	h := handle.New(v)    // first owner, count 1
//	c := h.Clone()        // share: count +1
//	m := h.Take()         // transfer: h empty, count unchanged
//	d.CopyFrom(c)         // d shares c's value, d's old value released
//	d.MoveFrom(m)         // d takes m's reference, m empty
//	err := d.Release()    // drop d's reference, finalize if last
//
// CopyFrom retains the new value before releasing the old one, so
// assigning a handle from itself, or from another handle on the same
// value, never destroys the value mid-assignment. MoveFrom from itself
// leaves the handle empty.
//
// # Access
//
// Get returns a non-owning pointer or nil. Deref fails with an error
// matching errors.ErrNullDereference on an empty handle:
//
//	v, err := h.Deref()
//	if errors.Is(err, errors.ErrNullDereference) { ... }
//
// # Finalization
//
// When the count reaches zero the value's Close(ctx), Close() or Drop()
// method runs, whichever it implements first (see resource.Finalize).
// Errors from it are returned by the Release, CopyFrom or MoveFrom call
// that dropped the last reference.
//
// # Threading
//
// Handles are not safe for concurrent use. The count is a plain integer.
package handle
