// Package table encodes AMQP 0-10 field tables.
//
// A table is a map from short string keys to typed values:
//
//	size    uint32  bytes that follow, including count
//	count   uint32  number of entries
//	entries         key (shortstr), type code (octet), value
//
// Entries are written in key order so equal tables encode identically.
// The supported Go value types and their codes are:
//
//	int8 0x01, uint8 0x02, bool 0x08, int16 0x11, uint16 0x12,
//	int32 0x21, uint32 0x22, float32 0x23, int64 0x31, uint64 0x32,
//	float64 0x33, uuid.UUID 0x48, []byte 0xa0, string 0x95,
//	Table 0xa8, nil 0xf0
package table
