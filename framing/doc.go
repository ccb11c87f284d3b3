// Package framing holds the built-in AMQP 0-10 structure and method tables
// and the framing that puts them on the wire.
//
// Method bodies are written as a class-id octet, a method-id octet and the
// unpacked body. Typed structures travel in struct32 form: a 4-byte size, the
// 2-byte type code and the packed body. A header segment is a run of struct32
// entries.
package framing
