package errors

import (
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
				Phase:  PhaseDecode,
				Kind:   KindInvalidEncoding,
				Path:   []string{"window_set_title", "title"},
				GoType: "string",
				CType:  "const char*",
				Detail: "cannot decode",
			},
			contains: []string{"[decode]", "invalid_encoding", "window_set_title.title", "string", "const char*", "cannot decode"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[encode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhasePlatform,
				Kind:   KindPlatform,
				Detail: "create window",
				Cause:  errors.New("no display"),
			},
			contains: []string{"[platform]", "platform", "create window", "caused by", "no display"},
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
		Phase: PhaseEncode,
		Kind:  KindAllocation,
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
		Phase: PhaseDecode,
		Kind:  KindNullPointer,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindNullPointer}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindNullPointer}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseDecode, Kind: KindNullPointer}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidEncoding).
		Path("dialog_open_files", "filters").
		GoType("string").
		CType("const char*").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "utf-8", "latin-1").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidEncoding {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEncoding)
	}
	if len(err.Path) != 2 || err.Path[1] != "filters" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.GoType != "string" || err.CType != "const char*" {
		t.Errorf("GoType=%q CType=%q", err.GoType, err.CType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected utf-8, got latin-1" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"InvalidUTF8", InvalidUTF8(PhaseDecode, []string{"s"}, []byte{0xff}), KindInvalidEncoding},
		{"NullPointer", NullPointer(PhaseDecode, []string{"p"}, "const char*"), KindNullPointer},
		{"OutOfBounds", OutOfBounds(PhaseDecode, nil, 10, 5), KindOutOfBounds},
		{"NotFound", NotFound(PhasePlatform, "window", 7), KindNotFound},
		{"InvalidInput", InvalidInput(PhaseDecode, "bad"), KindInvalidInput},
		{"Unsupported", Unsupported(PhasePlatform, "sound"), KindUnsupported},
		{"NotInitialized", NotInitialized(PhaseBoundary, "adapter"), KindNotInitialized},
		{"Busy", Busy(PhasePlatform, "window", 3), KindBusy},
		{"Platform", Platform("beep", errors.New("x")), KindPlatform},
		{"Wrap", Wrap(PhaseConfig, KindInvalidInput, errors.New("x"), "parse"), KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if KindOf(tt.err) != tt.kind {
				t.Errorf("KindOf = %v, want %v", KindOf(tt.err), tt.kind)
			}
		})
	}

	nf := NotFound(PhasePlatform, "window", 7)
	if !strings.Contains(nf.Error(), "window 7 not found") {
		t.Errorf("NotFound message = %q", nf.Error())
	}
}

func TestPanicError_Describe(t *testing.T) {
	var nilMap map[string]int
	runtimeErr := func() (err any) {
		defer func() { err = recover() }()
		nilMap["x"] = 1
		return nil
	}()

	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"nil payload", nil, Aborted},
		{"empty string", "", Aborted},
		{"string", "boom", "boom"},
		{"error", errors.New("bad state"), "bad state"},
		{"runtime error", runtimeErr, "assignment to entry in nil map"},
		{"other", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := NewPanicError(tt.payload, nil)
			if got := pe.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
			if !strings.HasPrefix(pe.Error(), "panic: ") {
				t.Errorf("Error() = %q, want panic prefix", pe.Error())
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != "" {
		t.Error("KindOf(nil) should be empty")
	}
	if KindOf(errors.New("plain")) != KindExplicitFailure {
		t.Error("plain errors are explicit failures")
	}

	pe := NewPanicError("boom", nil)
	if KindOf(pe) != KindAbnormalTermination {
		t.Error("panic errors are abnormal terminations")
	}
	if !IsAbnormal(fmt.Errorf("wrapped: %w", pe)) {
		t.Error("IsAbnormal should see through wrapping")
	}

	inner := errors.New("inner")
	if !errors.Is(NewPanicError(inner, nil), inner) {
		t.Error("PanicError should unwrap an error payload")
	}
}
