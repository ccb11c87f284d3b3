package schema

import (
	"fmt"
	"strings"

	"github.com/wippyai/amqp-codec/errors"
)

// Definition is the schema-level description of a structure or method body.
type Definition struct {
	// Responses names the methods that answer this one.
	Responses []string
	Fields    []FieldDef
	Name      string
	Class     string
	// ResultType names the result structure a method produces, if any.
	ResultType string
	// Pack is the flags-word width in bytes; 0 selects unpacked encoding.
	Pack     int
	Type     uint16
	ClassID  uint8
	MethodID uint8
	// Method marks a method body; ClassID and MethodID identify it on the wire.
	Method bool
	// Result marks a result structure whose type code is qualified by ClassID.
	Result         bool
	ContentBearing bool
}

// Structure is an immutable, validated structure descriptor.
type Structure struct {
	byName     map[string]int
	name       string
	class      string
	resultType string
	responses  []string
	fields     []Field
	units      []Unit
	masks      []uint64
	pack       int
	typ        uint16
	classID    uint8
	methodID   uint8
	method     bool
	result     bool
	content    bool
	bitsOnly   bool
}

// NewStructure validates def and builds its descriptor.
func NewStructure(def Definition) (*Structure, error) {
	qualified := def.Name
	if def.Class != "" {
		qualified = def.Class + "." + def.Name
	}
	path := []string{qualified}

	if def.Name == "" {
		return nil, errors.Schema(errors.KindInvalidField, nil, "structure name is empty")
	}
	if !validPack(def.Pack) {
		return nil, errors.New(errors.PhaseSchema, errors.KindInvalidPack).
			Path(path...).
			Value(def.Pack).
			Detail("flags word width %d is not one of 1, 2, 4, 8", def.Pack).
			Build()
	}
	if def.Pack > 0 && len(def.Fields) > def.Pack*8 {
		return nil, errors.Schema(errors.KindFlagsTooNarrow, path,
			"%d fields exceed the %d bits of a %d-byte flags word", len(def.Fields), def.Pack*8, def.Pack)
	}

	s := &Structure{
		byName:     make(map[string]int, len(def.Fields)),
		name:       def.Name,
		class:      def.Class,
		resultType: def.ResultType,
		responses:  append([]string(nil), def.Responses...),
		fields:     make([]Field, 0, len(def.Fields)),
		pack:       def.Pack,
		typ:        def.Type,
		classID:    def.ClassID,
		methodID:   def.MethodID,
		method:     def.Method,
		result:     def.Result,
		content:    def.ContentBearing,
		bitsOnly:   true,
	}

	for i, fd := range def.Fields {
		f, err := buildField(fd, i, path)
		if err != nil {
			return nil, err
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, errors.Schema(errors.KindDuplicateField, append(path, f.Name),
				"field %q declared more than once", f.Name)
		}
		s.byName[f.Name] = i
		s.fields = append(s.fields, f)
		if !f.IsBit() {
			s.bitsOnly = false
		}
	}

	s.units = Sequence(s.fields)
	if s.pack > 0 {
		s.masks = make([]uint64, len(s.fields))
		for i := range s.fields {
			s.masks[i] = FlagMask(s.pack, i)
		}
	}

	return s, nil
}

func buildField(fd FieldDef, index int, path []string) (Field, error) {
	fieldPath := append(append([]string{}, path...), fd.Name)
	if fd.Name == "" {
		return Field{}, errors.Schema(errors.KindInvalidField, path, "field %d has no name", index)
	}

	var kind Kind
	switch {
	case fd.Struct != nil && (fd.Domain == "" || fd.Domain == KindStruct.String()):
		kind = KindStruct
	case fd.Struct != nil:
		return Field{}, errors.Schema(errors.KindInvalidField, fieldPath,
			"structure reference given for domain %q", fd.Domain)
	default:
		k, err := ParseKind(fd.Domain)
		if err != nil {
			return Field{}, errors.UnknownDomain(fieldPath, fd.Domain)
		}
		if k == KindStruct {
			return Field{}, errors.Schema(errors.KindInvalidField, fieldPath, "struct domain without a structure reference")
		}
		kind = k
	}

	class, err := Classify(kind)
	if err != nil {
		return Field{}, errors.WithPath(err, fieldPath...)
	}

	return Field{
		Struct: fd.Struct,
		Name:   fd.Name,
		Class:  class,
		Index:  index,
		Kind:   kind,
	}, nil
}

// MustStructure is like NewStructure but panics on error. It is meant for
// descriptor tables built during package initialization.
func MustStructure(def Definition) *Structure {
	s, err := NewStructure(def)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return s
}

func (s *Structure) Name() string  { return s.name }
func (s *Structure) Class() string { return s.class }

// QualifiedName returns "class.name", or just the name for class-less structures.
func (s *Structure) QualifiedName() string {
	if s.class == "" {
		return s.name
	}
	return s.class + "." + s.name
}

func (s *Structure) ClassID() uint8  { return s.classID }
func (s *Structure) MethodID() uint8 { return s.methodID }
func (s *Structure) IsMethod() bool  { return s.method }
func (s *Structure) IsResult() bool  { return s.result }

// TypeCode returns the structure type code. Result structures are only unique
// within their class, so their code is qualified as type + classID*256.
func (s *Structure) TypeCode() uint16 {
	if s.result {
		return s.typ + uint16(s.classID)*256
	}
	return s.typ
}

// HasTypeCode reports whether the structure carries a type code.
func (s *Structure) HasTypeCode() bool {
	return !s.method && s.typ != 0
}

// Packed reports whether the structure is encoded behind a flags word.
func (s *Structure) Packed() bool { return s.pack > 0 }

// PackWidth returns the flags-word width in bytes, or 0 for unpacked structures.
func (s *Structure) PackWidth() int { return s.pack }

func (s *Structure) NumFields() int { return len(s.fields) }

// Field returns the field with declaration index i.
func (s *Structure) Field(i int) Field { return s.fields[i] }

// FieldByName looks up a field by name.
func (s *Structure) FieldByName(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Fields returns a copy of the fields in declaration order.
func (s *Structure) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Units returns the unpacked encoding units. The slice must not be modified.
func (s *Structure) Units() []Unit { return s.units }

// FlagMask returns the flags-word mask of field i. It is 0 for unpacked structures.
func (s *Structure) FlagMask(i int) uint64 {
	if s.masks == nil {
		return 0
	}
	return s.masks[i]
}

// FlagPosition returns the flags-word bit of field i in a packed structure.
func (s *Structure) FlagPosition(i int) uint {
	return FlagPosition(s.pack, i)
}

// HasBitFieldsOnly reports whether every field is a bit.
func (s *Structure) HasBitFieldsOnly() bool { return s.bitsOnly }

func (s *Structure) IsContentBearing() bool { return s.content }
func (s *Structure) ResultExpected() bool   { return s.resultType != "" }
func (s *Structure) ResultType() string     { return s.resultType }
func (s *Structure) ResponseExpected() bool { return len(s.responses) > 0 }

// Responses returns the names of the methods that answer this one.
func (s *Structure) Responses() []string {
	return append([]string(nil), s.responses...)
}

func (s *Structure) String() string {
	var b strings.Builder
	b.WriteString(s.QualifiedName())
	switch {
	case s.method:
		fmt.Fprintf(&b, " method %d.%d", s.classID, s.methodID)
	case s.HasTypeCode():
		fmt.Fprintf(&b, " struct type=%d", s.TypeCode())
	default:
		b.WriteString(" struct")
	}
	if s.pack > 0 {
		fmt.Fprintf(&b, " pack=%d", s.pack)
	}
	b.WriteString(" (")
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Domain())
	}
	b.WriteByte(')')
	return b.String()
}
