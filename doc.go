// Package sharedptr provides reference-counted shared ownership for Go values.
//
// A value that several owners use, and that must be cleaned up
// deterministically once nobody needs it (a runtime, a file, a pooled
// buffer), is wrapped in a control block that counts its owners. Owners hold
// handles; the last handle released finalizes the value exactly once.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	sharedptr/
//	├── handle/            Handle[T]: the user-facing shared pointer
//	├── control/           Block[T]: value ownership and the live count
//	├── resource/          Finalization, lifecycle events, Recorder and Tracker
//	├── errors/            Structured error types (NullDereference and friends)
//	├── cmd/sharedptr/     Demo driver: scenario, YAML scripts, REPL, TUI
//	└── examples/runtime/  Sharing one wazero runtime between tenants
//
// # Quick Start
//
//	h := handle.New(file)     // count 1
//	c := h.Clone()            // count 2
//	_ = h.Release()           // count 1, file still open
//	_ = c.Release()           // count 0, file.Close() runs
//
// Handles are single-threaded; see package handle for the full contract.
package sharedptr
