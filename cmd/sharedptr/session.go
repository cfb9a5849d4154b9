package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/sharedptr/control"
	"github.com/wippyai/sharedptr/errors"
	"github.com/wippyai/sharedptr/handle"
	"github.com/wippyai/sharedptr/internal/payload"
	"github.com/wippyai/sharedptr/resource"
)

const sessionHelp = `commands:
  new <h> [id]        construct <h> from a fresh payload
  clone <dst> <src>   copy-construct a new handle
  take <dst> <src>    move-construct a new handle
  dup <dst> <src>     new handle on a copy of <src>'s payload
  copy <dst> <src>    copy-assign
  move <dst> <src>    move-assign
  drop <h>            release <h>
  swap <a> <b>        exchange references
  rename <h> <id>     rename the payload behind <h>
  get <h>             print the raw pointer
  deref <h>           print the payload
  count <h>           print the use count
  echo <text>         print text
  list | stats | help`

// Session is a set of named handles driven by text commands.
type Session struct {
	out     io.Writer
	log     *zap.Logger
	tracker *resource.Tracker
	slots   map[string]*handle.Handle[payload.Verbose]
	opts    control.Options
	closed  bool
}

// NewSession creates a session writing command output to out.
func NewSession(out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	tracker := resource.NewTracker()
	return &Session{
		out:     out,
		log:     log,
		tracker: tracker,
		slots:   make(map[string]*handle.Handle[payload.Verbose]),
		opts:    control.Options{Observer: tracker},
	}
}

// Tracker returns the tracker observing every block of the session.
func (s *Session) Tracker() *resource.Tracker {
	return s.tracker
}

// Names returns the slot names in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.slots))
	for name := range s.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Slot returns the named handle.
func (s *Session) Slot(name string) (*handle.Handle[payload.Verbose], bool) {
	h, ok := s.slots[name]
	return h, ok
}

// Exec runs one command line. Blank lines and lines starting with # are ignored.
func (s *Session) Exec(line string) error {
	if s.closed {
		return errors.InvalidInput(errors.PhaseScript, "session closed")
	}

	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "new":
		if err := arity(cmd, args, 1, 2); err != nil {
			return err
		}
		id := "v-" + uuid.NewString()[:8]
		if len(args) == 2 {
			id = args[1]
		}
		return s.slot(args[0]).MoveFrom(handle.NewWithOptions(payload.Named(id, s.log), s.opts))

	case "clone", "take":
		if err := arity(cmd, args, 2, 2); err != nil {
			return err
		}
		if _, exists := s.slots[args[0]]; exists {
			return errors.InvalidInput(errors.PhaseScript, fmt.Sprintf("handle %q already exists", args[0]))
		}
		src, err := s.lookup(args[1])
		if err != nil {
			return err
		}
		var h *handle.Handle[payload.Verbose]
		if cmd == "clone" {
			h = src.Clone()
		} else {
			h = src.Take()
		}
		h.SetName(args[0])
		s.slots[args[0]] = h
		return nil

	case "dup":
		if err := arity(cmd, args, 2, 2); err != nil {
			return err
		}
		if _, exists := s.slots[args[0]]; exists {
			return errors.InvalidInput(errors.PhaseScript, fmt.Sprintf("handle %q already exists", args[0]))
		}
		src, err := s.lookup(args[1])
		if err != nil {
			return err
		}
		v, err := src.Deref()
		if err != nil {
			return err
		}
		h := handle.NewWithOptions(v.Clone(), s.opts)
		h.SetName(args[0])
		s.slots[args[0]] = h
		return nil

	case "copy", "move":
		if err := arity(cmd, args, 2, 2); err != nil {
			return err
		}
		src, err := s.lookup(args[1])
		if err != nil {
			return err
		}
		if cmd == "copy" {
			return s.slot(args[0]).CopyFrom(src)
		}
		return s.slot(args[0]).MoveFrom(src)

	case "drop":
		if err := arity(cmd, args, 1, 1); err != nil {
			return err
		}
		h, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		return h.Release()

	case "swap":
		if err := arity(cmd, args, 2, 2); err != nil {
			return err
		}
		a, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		b, err := s.lookup(args[1])
		if err != nil {
			return err
		}
		a.Swap(b)
		return nil

	case "rename":
		if err := arity(cmd, args, 2, 2); err != nil {
			return err
		}
		h, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		v, err := h.Deref()
		if err != nil {
			return err
		}
		v.Rename(args[1])
		return nil

	case "get":
		if err := arity(cmd, args, 1, 1); err != nil {
			return err
		}
		h, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		s.printf("%s points to: %s\n", h, pointer(h))
		return nil

	case "deref":
		if err := arity(cmd, args, 1, 1); err != nil {
			return err
		}
		h, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		v, err := h.Deref()
		if err != nil {
			return err
		}
		s.printf("%s -> %s\n", h, v)
		return nil

	case "count":
		if err := arity(cmd, args, 1, 1); err != nil {
			return err
		}
		h, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		s.printf("%d\n", h.UseCount())
		return nil

	case "echo":
		s.printf("%s\n", strings.Join(args, " "))
		return nil

	case "list":
		for _, name := range s.Names() {
			h := s.slots[name]
			s.printf("%s points to: %s\n", h, pointer(h))
		}
		return nil

	case "stats":
		s.printf("created=%d live=%d destroyed=%d\n",
			s.tracker.Created(), s.tracker.Len(), s.tracker.Destroyed())
		return nil

	case "help":
		s.printf("%s\n", sessionHelp)
		return nil

	default:
		return errors.Unsupported(errors.PhaseScript, fmt.Sprintf("unknown command %q", cmd))
	}
}

// Close releases every slot in name order. It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	for _, name := range s.Names() {
		err = multierr.Append(err, s.slots[name].Release())
	}
	if leaked := s.tracker.Leaked(); len(leaked) > 0 {
		s.log.Warn("blocks still alive after session close", zap.Int("count", len(leaked)))
	}
	return err
}

// slot returns the named handle, creating an empty one if needed.
func (s *Session) slot(name string) *handle.Handle[payload.Verbose] {
	h, ok := s.slots[name]
	if !ok {
		h = handle.Empty[payload.Verbose]()
		h.SetName(name)
		s.slots[name] = h
	}
	return h
}

func (s *Session) lookup(name string) (*handle.Handle[payload.Verbose], error) {
	h, ok := s.slots[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseScript, "handle", name)
	}
	return h, nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func arity(cmd string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		return errors.InvalidInput(errors.PhaseScript,
			fmt.Sprintf("%s: expected %d..%d arguments, got %d", cmd, lo, hi, len(args)))
	}
	return nil
}

func pointer(h *handle.Handle[payload.Verbose]) string {
	if v := h.Get(); v != nil {
		return fmt.Sprintf("%p", v)
	}
	return "nullptr"
}
