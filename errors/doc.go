// Package errors provides structured error types for the amqp-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, domain type name, and cause chain.
//
// The three failure families of the codec map onto phases:
//
//	PhaseSchema  malformed structure descriptor, fatal at construction time
//	PhaseEncode  value that cannot be represented (overflow, type mismatch)
//	PhaseDecode  KindUnderrun (need more bytes) or KindMalformed (inconsistent bytes)
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnderrun).
//		Path("delivery-properties", "routing-key").
//		Domain("shortstr").
//		Detail("need %d bytes, have %d", 12, 3).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Underrun(path, 12, 3)
//	err := errors.Overflow(errors.PhaseEncode, path, 300, "shortstr")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
