package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema Phase = "schema" // descriptor construction
	PhaseEncode Phase = "encode" // instance to bytes
	PhaseDecode Phase = "decode" // bytes to instance
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownDomain      Kind = "unknown_domain"
	KindInvalidPack        Kind = "invalid_pack"
	KindFlagsTooNarrow     Kind = "flags_too_narrow"
	KindDuplicateField     Kind = "duplicate_field"
	KindInvalidField       Kind = "invalid_field"
	KindDuplicateStructure Kind = "duplicate_structure"
	KindUnderrun           Kind = "underrun"
	KindMalformed          Kind = "malformed"
	KindOverflow           Kind = "overflow"
	KindTypeMismatch       Kind = "type_mismatch"
	KindFieldUnknown       Kind = "field_unknown"
	KindNotFound           Kind = "not_found"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Domain string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Domain != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Domain != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", domain ")
			b.WriteString(e.Domain)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("domain ")
			b.WriteString(e.Domain)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Domain != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Domain sets the schema domain type name
func (b *Builder) Domain(t string) *Builder {
	b.err.Domain = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Schema creates a descriptor construction error
func Schema(kind Kind, path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseSchema,
		Kind:   kind,
		Path:   path,
		Detail: detail,
	}
}

// UnknownDomain creates an error for an unrecognized domain type tag
func UnknownDomain(path []string, tag string) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindUnknownDomain,
		Path:   path,
		Domain: tag,
		Detail: fmt.Sprintf("unknown domain type %q", tag),
		Value:  tag,
	}
}

// Underrun creates a buffer underrun error. Callers may retry once more bytes are available.
func Underrun(path []string, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnderrun,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
		Value:  need,
	}
}

// Malformed creates an error for internally inconsistent encoded data
func Malformed(path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformed,
		Path:   path,
		Detail: detail,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, domain string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Domain: domain,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, domain string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Domain: domain,
		Detail: fmt.Sprintf("value %v overflows %s", value, domain),
		Value:  value,
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath returns err with prefix prepended to its path when err is an *Error.
// Other errors are returned unchanged.
func WithPath(err error, prefix ...string) error {
	var e *Error
	if len(prefix) == 0 || !errors.As(err, &e) {
		return err
	}
	cp := *e
	cp.Path = append(append(make([]string, 0, len(prefix)+len(e.Path)), prefix...), e.Path...)
	return &cp
}

// IsSchema reports whether err is a descriptor construction error.
func IsSchema(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Phase == PhaseSchema
}

// IsUnderrun reports whether err is a buffer underrun.
func IsUnderrun(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnderrun
}

// IsMalformed reports whether err reports inconsistent encoded data.
func IsMalformed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindMalformed
}
