// Package resource provides lifecycle support for reference-counted values.
//
// A control block owns exactly one value. When the last reference is
// released the block is destroyed and the value is finalized through
// Finalize. This package defines that finalization contract and the
// observer hooks used to watch blocks come and go.
//
// # Finalization
//
// A shared value may implement one of:
//
//	ContextCloser - Close(ctx) error (e.g. wazero.Runtime)
//	io.Closer     - Close() error
//	Dropper       - Drop()
//
// Finalize picks the first one the value implements, in that order.
// Values implementing none of them are simply dropped.
//
// # Observers
//
// Register observers to track block lifecycle events:
//
//	opts := control.DefaultOptions()
//	opts.Observer = resource.ObserverFunc(func(e resource.Event) {
//	    switch e.Type {
//	    case resource.EventCreated:
//	        log.Printf("block %d created", e.Block)
//	    case resource.EventDestroyed:
//	        log.Printf("block %d destroyed", e.Block)
//	    }
//	})
//
// Recorder keeps every event for later inspection. Tracker keeps the set of
// live blocks and how many times each was finalized, which is what leak and
// double-free checks need:
//
//	tracker := resource.NewTracker()
//	// ... run code using handles created with tracker as observer ...
//	if leaked := tracker.Leaked(); len(leaked) > 0 { ... }
//
// # Threading
//
// Blocks and handles are single-threaded. Recorder and Tracker lock
// internally so one instance can be shared by several owners.
package resource
