package codec

import (
	"testing"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/schema"
)

var (
	replyTo = schema.MustStructure(schema.Definition{
		Name: "reply-to",
		Pack: 2,
		Fields: []schema.FieldDef{
			{Name: "exchange", Domain: "shortstr"},
			{Name: "routing-key", Domain: "shortstr"},
		},
	})

	everything = schema.MustStructure(schema.Definition{
		Name:  "everything",
		Class: "test",
		Fields: []schema.FieldDef{
			{Name: "o", Domain: "octet"},
			{Name: "s", Domain: "short"},
			{Name: "l", Domain: "long"},
			{Name: "ll", Domain: "longlong"},
			{Name: "ts", Domain: "timestamp"},
			{Name: "b1", Domain: "bit"},
			{Name: "b2", Domain: "bit"},
			{Name: "ss", Domain: "shortstr"},
			{Name: "ls", Domain: "longstr"},
			{Name: "t", Domain: "table"},
			{Name: "c", Domain: "content"},
			{Name: "lst", Domain: "long-struct"},
			{Name: "r", Struct: replyTo},
			{Name: "set", Domain: "sequence-set"},
			{Name: "b3", Domain: "bit"},
		},
	})

	everythingPacked = schema.MustStructure(schema.Definition{
		Name:   "everything-packed",
		Class:  "test",
		Pack:   2,
		Fields: everythingFields(),
	})
)

func everythingFields() []schema.FieldDef {
	fields := make([]schema.FieldDef, 0, everything.NumFields())
	for _, f := range everything.Fields() {
		def := schema.FieldDef{Name: f.Name, Domain: f.Kind.String()}
		if f.Kind == schema.KindStruct {
			def = schema.FieldDef{Name: f.Name, Struct: f.Struct}
		}
		fields = append(fields, def)
	}
	return fields
}

func bitStruct(n int) *schema.Structure {
	fields := make([]schema.FieldDef, n)
	for i := range fields {
		fields[i] = schema.FieldDef{Name: string(rune('a' + i)), Domain: "bit"}
	}
	return schema.MustStructure(schema.Definition{Name: "bits", Fields: fields})
}

func encodeBytes(t *testing.T, s *Struct) []byte {
	t.Helper()
	w := buffer.NewWriter(0)
	if err := s.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if w.Len() != s.Size() {
		t.Fatalf("Encode wrote %d bytes, Size reports %d", w.Len(), s.Size())
	}
	return w.Bytes()
}
