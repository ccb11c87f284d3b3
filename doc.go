// Package amqpcodec encodes AMQP 0-x structures to and from their wire layout.
//
// Structures are described at run time by immutable descriptors and encoded by
// a generic codec that interprets them directly: fixed-width big-endian
// scalars, length-prefixed strings and payloads, bit fields packed eight to an
// octet, and packed structures whose leading flags word marks which fields
// are present.
//
// # Packages
//
//	amqpcodec/          Root package with the Sizer and Encoder interfaces
//	├── schema/         Domain types, field sequencing, structure descriptors
//	├── codec/          Structure instances and the unpacked/packed codec rules
//	├── table/          AMQP 0-10 field tables
//	├── framing/        Built-in AMQP 0-10 structures, methods and framing
//	├── buffer/         Big-endian byte writer and position-tracked reader
//	├── errors/         Structured error types
//	└── cmd/amqp-layout Command line and TUI explorer for wire layouts
//
// # Quick Start
//
// Describe a structure and encode an instance:
//
//	props := schema.MustStructure(schema.Definition{
//	    Name: "delivery-properties",
//	    Pack: 2,
//	    Fields: []schema.FieldDef{
//	        {Name: "redelivered", Domain: "bit"},
//	        {Name: "priority", Domain: "octet"},
//	        {Name: "routing-key", Domain: "shortstr"},
//	    },
//	})
//
//	s := codec.New(props).MustSet("priority", 4).MustSet("routing-key", "rk")
//	data, err := codec.Marshal(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	back, err := codec.Unmarshal(props, data)
//
// # Presence
//
// In a packed structure a field is written only when it is non-zero or
// non-empty. A nested structure counts as present whenever it encodes to at
// least one byte, so a packed one is always written. A field set to zero
// decodes the same as one never set; this is how the protocol defines
// presence and the codec keeps it exactly.
//
// # Errors
//
// Descriptor problems are reported when the descriptor is built. Decoding
// reports an underrun when input ends early, which a caller may retry with
// more data, and malformed data when the input contradicts itself. Encoding
// fails on values that cannot be represented rather than truncating them.
//
// # Thread Safety
//
// Descriptors and registries are immutable and safe for concurrent use.
// Instances, writers and readers are not.
package amqpcodec
