package errors

import (
	"context"
	"errors"
	"fmt"
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
				Phase:  PhaseConfig,
				Kind:   KindInvalidInput,
				Path:   []string{"model", "main", "path"},
				Detail: "duplicate path",
			},
			contains: []string{"[config]", "invalid_input", "model.main.path", "duplicate path"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTrack,
				Kind:  KindDisposed,
			},
			contains: []string{"[track]", "disposed"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindLoadFailed,
				Detail: "engine initialization",
				Cause:  errors.New("network down"),
			},
			contains: []string{"[load]", "load_failed", "engine initialization", "caused by", "network down"},
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
		Phase: PhaseLoad,
		Kind:  KindLoadFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseContext,
		Kind:  KindNotFound,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseContext, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseContext, Kind: KindDisposed}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseContext, Kind: KindNotFound}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConfig, KindInvalidInput).
		Path("loader", "delay").
		Value("soon").
		Cause(cause).
		Detail("cannot parse %q", "soon").
		Build()

	if err.Phase != PhaseConfig {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseConfig)
	}
	if err.Kind != KindInvalidInput {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
	}
	if len(err.Path) != 2 || err.Path[1] != "delay" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Value != "soon" {
		t.Errorf("Value = %v", err.Value)
	}
	if err.Detail != `cannot parse "soon"` {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}
}

func TestBuilder_DetailWithoutArgs(t *testing.T) {
	err := New(PhaseConfig, KindInvalidInput).Detail("100%").Build()
	if err.Detail != "100%" {
		t.Errorf("Detail = %q, want verbatim message", err.Detail)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
		text  string
	}{
		{"canceled", Canceled(PhaseLoad, nil), PhaseLoad, KindCanceled, "operation canceled"},
		{"load failed", LoadFailed(errors.New("boom")), PhaseLoad, KindLoadFailed, "boom"},
		{"not found", NotFound(PhaseContext, "context", "editor"), PhaseContext, KindNotFound, `context "editor" not found`},
		{"not initialized", NotInitialized(PhaseMount, "engine"), PhaseMount, KindNotInitialized, "engine not initialized"},
		{"invalid input", InvalidInput(PhaseConfig, "empty theme"), PhaseConfig, KindInvalidInput, "empty theme"},
		{"disposed", Disposed(PhaseTrack, "model"), PhaseTrack, KindDisposed, "model is disposed"},
		{"already mounted", AlreadyMounted("editor"), PhaseMount, KindAlreadyMounted, "editor already mounted"},
		{"parse failed", ParseFailed("host.hcl", errors.New("bad")), PhaseConfig, KindParse, "parse host.hcl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.text) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.text)
			}
		})
	}
}

type flagCancel struct{ canceled bool }

func (e flagCancel) Error() string  { return "flag" }
func (e flagCancel) Canceled() bool { return e.canceled }

type typedCancel struct{ typ string }

func (e typedCancel) Error() string      { return e.typ }
func (e typedCancel) CancelType() string { return e.typ }

func TestIsCanceled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, true},
		{"wrapped context canceled", fmt.Errorf("init: %w", context.Canceled), true},
		{"deadline", context.DeadlineExceeded, false},
		{"structured canceled", Canceled(PhaseLoad, nil), true},
		{"structured failure", LoadFailed(errors.New("boom")), false},
		{"load failed wrapping cancel", LoadFailed(context.Canceled), true},
		{"canceled method true", flagCancel{canceled: true}, true},
		{"canceled method false", flagCancel{canceled: false}, false},
		{"single l spelling", typedCancel{typ: "cancelation"}, true},
		{"double l spelling", typedCancel{typ: "cancellation"}, true},
		{"other type tag", typedCancel{typ: "timeout"}, false},
		{"plain", errors.New("canceled"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCanceled(tt.err); got != tt.want {
				t.Errorf("IsCanceled(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
