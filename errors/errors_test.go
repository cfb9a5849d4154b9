package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDestroy,
				Kind:   KindDestroyFailed,
				Handle: "conn",
				Type:   "*os.File",
				Detail: "finalizer failed",
			},
			contains: []string{"[destroy]", "destroy_failed", "at conn", "type *os.File", "finalizer failed"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAccess,
				Kind:  KindNullDereference,
			},
			contains: []string{"[access]", "null_dereference"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDestroy,
				Kind:   KindDestroyFailed,
				Detail: "close",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[destroy]", "destroy_failed", "close", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDestroy,
		Kind:  KindDestroyFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseAccess,
		Kind:   KindNullDereference,
		Handle: "A",
	}

	if !err.Is(&Error{Phase: PhaseAccess, Kind: KindNullDereference}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseRelease, Kind: KindNullDereference}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseAccess, Kind: KindInvalidInput}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrNullDereference) {
		t.Error("errors.Is should match ErrNullDereference")
	}
	if errors.Is(errors.New("other"), ErrNullDereference) {
		t.Error("plain error should not match ErrNullDereference")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDestroy, KindDestroyFailed).
		Handle("conn").
		Type("*os.File").
		Value(42).
		Cause(cause).
		Detail("close %s: %d", "fd", 3).
		Build()

	if err.Phase != PhaseDestroy {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDestroy)
	}
	if err.Kind != KindDestroyFailed {
		t.Errorf("Kind = %v, want %v", err.Kind, KindDestroyFailed)
	}
	if err.Handle != "conn" {
		t.Errorf("Handle = %v, want 'conn'", err.Handle)
	}
	if err.Type != "*os.File" {
		t.Errorf("Type = %v, want '*os.File'", err.Type)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "close fd: 3" {
		t.Errorf("Detail = %v, want 'close fd: 3'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullDereference", func(t *testing.T) {
		err := NullDereference("payload.Verbose", "A")
		if !errors.Is(err, ErrNullDereference) {
			t.Errorf("NullDereference should match ErrNullDereference")
		}
		if err.Type != "payload.Verbose" {
			t.Errorf("Type = %v, want 'payload.Verbose'", err.Type)
		}
		if err.Handle != "A" {
			t.Errorf("Handle = %v, want 'A'", err.Handle)
		}
	})

	t.Run("Interrupted", func(t *testing.T) {
		cause := errors.New("exit signal")
		err := Interrupted(PhaseScript, cause)
		if err.Kind != KindInterrupted {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInterrupted)
		}
		if !errors.Is(err, cause) {
			t.Errorf("Interrupted should unwrap to its cause")
		}
	})

	t.Run("NilResource", func(t *testing.T) {
		err := NilResource("int")
		if err.Phase != PhaseConstruct || err.Kind != KindInvalidInput {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("OverRelease", func(t *testing.T) {
		err := OverRelease("int", 7)
		if err.Kind != KindOverRelease {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverRelease)
		}
		if err.Value != uint64(7) {
			t.Errorf("Value = %v, want 7", err.Value)
		}
	})

	t.Run("RetainReleased", func(t *testing.T) {
		err := RetainReleased("int", 3)
		if err.Phase != PhaseRetain || err.Kind != KindReleased {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("DoubleDestroy", func(t *testing.T) {
		err := DoubleDestroy("int", 3)
		if err.Kind != KindDoubleDestroy {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDoubleDestroy)
		}
	})

	t.Run("StillReferenced", func(t *testing.T) {
		err := StillReferenced("int", 3, 2)
		if err.Kind != KindStillReferenced {
			t.Errorf("Kind = %v, want %v", err.Kind, KindStillReferenced)
		}
		if !strings.Contains(err.Detail, "2 reference") {
			t.Errorf("Detail = %v, should contain count", err.Detail)
		}
	})

	t.Run("DestroyFailed", func(t *testing.T) {
		cause := errors.New("busy")
		err := DestroyFailed("*os.File", cause)
		if !errors.Is(err, cause) {
			t.Errorf("DestroyFailed should unwrap to cause")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseScript, "handle", "B")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"B"`) {
			t.Errorf("Detail = %v, should quote name", err.Detail)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed("script", errors.New("bad yaml"))
		if err.Phase != PhaseScript || err.Kind != KindInvalidData {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("x")
		err := Wrap(PhaseScript, KindUnsupported, cause, "step")
		if err.Cause != cause || err.Detail != "step" {
			t.Errorf("Wrap lost context: %+v", err)
		}
	})
}
