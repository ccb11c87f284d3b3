// Package schema defines immutable structure descriptors and the wire layout
// rules derived from them.
//
// A Structure is an ordered list of typed fields plus a pack mode. Building one
// with NewStructure classifies every field's domain type, groups consecutive
// bit fields into octet-sized units and, for packed structures, assigns each
// field its bit in the leading flags word. All of this happens once; the
// resulting descriptor is read-only and safe to share between goroutines.
//
// # Domain Types
//
//	Domain        Category   Width
//	─────────────────────────────────────────
//	octet         scalar     1
//	short         scalar     2
//	long          scalar     4
//	longlong      scalar     8
//	timestamp     scalar     8
//	shortstr      variable   1-byte prefix
//	longstr       variable   4-byte prefix
//	table         variable   4-byte prefix
//	content       variable   4-byte prefix
//	long-struct   variable   4-byte prefix
//	bit           bit        -
//	struct        nested     size of the nested structure
//	sequence-set  nested     2-byte prefix + 8 bytes per range
//
// # Flag Assignment
//
// In a packed structure field i owns bit
//
//	packWidth*8 - 8 - (i/8)*8 + (i%8)
//
// of the flags word: fields fill the most significant byte first, and within a
// byte the first field takes the lowest bit.
//
// Malformed descriptors are rejected with PhaseSchema errors from the errors
// package; they are never detected later at encode time.
package schema
