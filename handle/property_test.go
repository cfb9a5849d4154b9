package handle

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/sharedptr/control"
	"github.com/wippyai/sharedptr/internal/payload"
	"github.com/wippyai/sharedptr/resource"
)

const slotCount = 4

type op struct {
	kind uint8
	dst  int
	src  int
}

func decodeOps(raw []byte) []op {
	ops := make([]op, 0, len(raw)/3)
	for i := 0; i+2 < len(raw); i += 3 {
		ops = append(ops, op{
			kind: raw[i] % 7,
			dst:  int(raw[i+1]) % slotCount,
			src:  int(raw[i+2]) % slotCount,
		})
	}
	return ops
}

// checkSlots verifies the count of every block equals the number of slots
// referencing it, and that referenced payloads are alive.
func checkSlots(slots []*Handle[payload.Verbose], tracker *resource.Tracker) bool {
	refs := make(map[uint64]uint32)
	for _, s := range slots {
		if !s.IsEmpty() {
			refs[s.BlockID()]++
		}
	}
	for _, s := range slots {
		if s.IsEmpty() {
			continue
		}
		if s.UseCount() != refs[s.BlockID()] {
			return false
		}
		if s.Get() == nil || s.Get().Drops() != 0 {
			return false
		}
	}
	return tracker.Len() == len(refs)
}

func TestHandle_RandomOperationSequences(t *testing.T) {
	property := func(raw []byte) bool {
		tracker := resource.NewTracker()
		opts := control.Options{Observer: tracker}

		slots := make([]*Handle[payload.Verbose], slotCount)
		for i := range slots {
			slots[i] = Empty[payload.Verbose]()
		}
		var created []*payload.Verbose

		for _, o := range decodeOps(raw) {
			dst, src := slots[o.dst], slots[o.src]
			var err error
			switch o.kind {
			case 0:
				v := payload.New(nil)
				created = append(created, v)
				err = dst.MoveFrom(NewWithOptions(v, opts))
			case 1:
				err = dst.CopyFrom(src)
			case 2:
				err = dst.MoveFrom(src)
			case 3:
				err = dst.Release()
			case 4:
				err = dst.MoveFrom(src.Clone())
			case 5:
				err = dst.MoveFrom(src.Take())
			case 6:
				dst.Swap(src)
			}
			if err != nil || !checkSlots(slots, tracker) {
				return false
			}
			for _, v := range created {
				if v.Drops() > 1 {
					return false
				}
			}
		}

		for _, s := range slots {
			if err := s.Release(); err != nil {
				return false
			}
		}
		for _, v := range created {
			if v.Drops() != 1 {
				return false
			}
		}
		return tracker.Len() == 0 && tracker.Destroyed() == len(created)
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}
