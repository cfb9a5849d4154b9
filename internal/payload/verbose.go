// Package payload provides Verbose, a value that logs its own lifecycle.
// It is the example payload shared by the tests and the sharedptr demo.
package payload

import (
	"go.uber.org/zap"
)

// DefaultID is the ID of a freshly constructed Verbose.
const DefaultID = "nameless"

// Verbose logs construction, renames and destruction.
type Verbose struct {
	log   *zap.Logger
	ID    string
	drops int
}

// New constructs a Verbose named DefaultID. A nil logger discards output.
func New(log *zap.Logger) *Verbose {
	return Named(DefaultID, log)
}

// Named constructs a Verbose with the given ID.
func Named(id string, log *zap.Logger) *Verbose {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Verbose{ID: id, log: log}
	v.log.Info("verbose construct", zap.String("id", id))
	return v
}

// Rename changes the ID.
func (v *Verbose) Rename(id string) {
	v.log.Info("verbose rename", zap.String("from", v.ID), zap.String("to", id))
	v.ID = id
}

// Clone returns an independent copy. The copy does not inherit the ID
// and starts as DefaultID.
func (v *Verbose) Clone() *Verbose {
	v.log.Info("verbose copy construct", zap.String("id", DefaultID), zap.String("from", v.ID))
	return &Verbose{ID: DefaultID, log: v.log}
}

// Drop implements resource.Dropper.
func (v *Verbose) Drop() {
	v.drops++
	v.log.Info("verbose destruct", zap.String("id", v.ID), zap.Int("drops", v.drops))
}

// Drops reports how many times Drop ran.
func (v *Verbose) Drops() int {
	return v.drops
}

func (v *Verbose) String() string {
	return v.ID
}
