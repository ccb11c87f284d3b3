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
				Phase:  PhaseEncode,
				Kind:   KindTypeMismatch,
				Path:   []string{"delivery-properties", "reply-to", "exchange"},
				GoType: "int",
				Domain: "shortstr",
				Detail: "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "delivery-properties.reply-to.exchange", "int", "shortstr", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindUnderrun,
			},
			contains: []string{"[decode]", "underrun"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSchema,
				Kind:   KindDuplicateStructure,
				Detail: "registry",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[schema]", "duplicate_structure", "registry", "caused by", "underlying error"},
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
		Phase: PhaseDecode,
		Kind:  KindMalformed,
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
		Kind:  KindUnderrun,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindUnderrun}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindUnderrun}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindMalformed}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("read frame: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseDecode, Kind: KindUnderrun}) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindUnderrun).
		Path("message-properties", "content-type").
		GoType("string").
		Domain("shortstr").
		Value(12).
		Cause(cause).
		Detail("need %d bytes, have %d", 12, 3).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindUnderrun {
		t.Errorf("Kind = %v, want %v", err.Kind, KindUnderrun)
	}
	if len(err.Path) != 2 || err.Path[0] != "message-properties" || err.Path[1] != "content-type" {
		t.Errorf("Path = %v, want [message-properties content-type]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.Domain != "shortstr" {
		t.Errorf("Domain = %v, want 'shortstr'", err.Domain)
	}
	if err.Value != 12 {
		t.Errorf("Value = %v, want 12", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "need 12 bytes, have 3" {
		t.Errorf("Detail = %v, want 'need 12 bytes, have 3'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Schema", func(t *testing.T) {
		err := Schema(KindFlagsTooNarrow, []string{"s"}, "%d fields exceed %d flag bits", 9, 8)
		if err.Phase != PhaseSchema || err.Kind != KindFlagsTooNarrow {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.Detail != "9 fields exceed 8 flag bits" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("UnknownDomain", func(t *testing.T) {
		err := UnknownDomain([]string{"s", "f"}, "float128")
		if err.Kind != KindUnknownDomain || err.Domain != "float128" {
			t.Errorf("Kind=%v Domain=%v", err.Kind, err.Domain)
		}
	})

	t.Run("Underrun", func(t *testing.T) {
		err := Underrun([]string{"f"}, 8, 2)
		if err.Kind != KindUnderrun || err.Phase != PhaseDecode {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.Value != 8 {
			t.Errorf("Value = %v, want 8", err.Value)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		err := Malformed(nil, "count %d", 3)
		if err.Kind != KindMalformed || err.Detail != "count 3" {
			t.Errorf("Kind=%v Detail=%q", err.Kind, err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseEncode, []string{"field"}, "int", "octet")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int" || err.Domain != "octet" {
			t.Errorf("GoType=%v Domain=%v", err.GoType, err.Domain)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseEncode, []string{"val"}, 300, "shortstr")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})

	t.Run("FieldUnknown", func(t *testing.T) {
		err := FieldUnknown(PhaseEncode, []string{"queue.declare"}, "extra")
		if err.Kind != KindFieldUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldUnknown)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseDecode, "method", "7.99")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, "7.99") {
			t.Errorf("Kind=%v Detail=%q", err.Kind, err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseDecode, KindMalformed, cause, "table")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause in chain")
		}
	})
}

func TestWithPath(t *testing.T) {
	inner := Underrun([]string{"routing-key"}, 4, 1)
	err := WithPath(inner, "delivery-properties")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("WithPath returned %T", err)
	}
	if got := strings.Join(e.Path, "."); got != "delivery-properties.routing-key" {
		t.Errorf("Path = %q", got)
	}
	if strings.Join(inner.Path, ".") != "routing-key" {
		t.Error("WithPath must not mutate the original error")
	}

	plain := errors.New("plain")
	if WithPath(plain, "x") != plain {
		t.Error("non-structured errors should pass through")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		schema    bool
		underrun  bool
		malformed bool
	}{
		{"schema", Schema(KindInvalidPack, nil, "pack 3"), true, false, false},
		{"underrun", Underrun(nil, 1, 0), false, true, false},
		{"malformed", Malformed(nil, "bad"), false, false, true},
		{"wrapped underrun", fmt.Errorf("ctx: %w", Underrun(nil, 1, 0)), false, true, false},
		{"plain", errors.New("x"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSchema(tt.err); got != tt.schema {
				t.Errorf("IsSchema = %v, want %v", got, tt.schema)
			}
			if got := IsUnderrun(tt.err); got != tt.underrun {
				t.Errorf("IsUnderrun = %v, want %v", got, tt.underrun)
			}
			if got := IsMalformed(tt.err); got != tt.malformed {
				t.Errorf("IsMalformed = %v, want %v", got, tt.malformed)
			}
		})
	}
}
