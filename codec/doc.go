// Package codec encodes, decodes and sizes structure instances according to
// their schema descriptors.
//
// Unpacked structures write every field in declaration order; consecutive bit
// fields share one octet, the first field in bit 0. Packed structures start
// with a flags word and write only the non-bit fields whose flag is set. A
// field's flag is set when its value is non-zero or non-empty, so a zero value
// and an absent field are the same thing on the wire.
//
// Values are held in canonical Go types:
//
//	octet           uint8
//	short           uint16
//	long            uint32
//	longlong        uint64
//	timestamp       uint64
//	shortstr        string
//	longstr         string
//	content         []byte
//	long-struct     []byte
//	table           table.Table
//	bit             bool
//	struct          *Struct
//	sequence-set    SequenceSet
//
// Set converts other integer types and string/[]byte payloads to the
// canonical type of the field.
package codec
