package codec

import (
	"fmt"
	"strings"

	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/schema"
	"github.com/wippyai/amqp-codec/table"
)

// Struct is an instance of a structure: one value per field, in declaration order.
type Struct struct {
	desc   *schema.Structure
	values []any
}

// New creates an instance with every field at its domain zero value.
// Nested structure fields hold empty instances of their own structure.
func New(desc *schema.Structure) *Struct {
	s := &Struct{
		desc:   desc,
		values: make([]any, desc.NumFields()),
	}
	for i := range s.values {
		s.values[i] = zeroValue(desc.Field(i))
	}
	return s
}

// Descriptor returns the structure s is an instance of.
func (s *Struct) Descriptor() *schema.Structure { return s.desc }

func (s *Struct) lookup(name string) (schema.Field, error) {
	f, ok := s.desc.FieldByName(name)
	if !ok {
		return schema.Field{}, errors.FieldUnknown(errors.PhaseEncode, []string{s.desc.QualifiedName()}, name)
	}
	return f, nil
}

// Set assigns the named field. The value is converted to the canonical type of
// the field's domain; a nil value resets the field to its zero value.
func (s *Struct) Set(name string, v any) error {
	f, err := s.lookup(name)
	if err != nil {
		return err
	}
	return s.set(f, v)
}

// SetField assigns field i.
func (s *Struct) SetField(i int, v any) error {
	if i < 0 || i >= len(s.values) {
		return errors.FieldUnknown(errors.PhaseEncode, []string{s.desc.QualifiedName()}, fmt.Sprintf("#%d", i))
	}
	return s.set(s.desc.Field(i), v)
}

func (s *Struct) set(f schema.Field, v any) error {
	if v == nil {
		s.values[f.Index] = zeroValue(f)
		return nil
	}
	cv, err := convert(f, v)
	if err != nil {
		return errors.WithPath(err, s.desc.QualifiedName())
	}
	s.values[f.Index] = cv
	return nil
}

// MustSet is like Set but panics on error.
func (s *Struct) MustSet(name string, v any) *Struct {
	if err := s.Set(name, v); err != nil {
		panic(err)
	}
	return s
}

// Get returns the value of the named field.
func (s *Struct) Get(name string) (any, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return s.values[f.Index], nil
}

// Field returns the value of field i.
func (s *Struct) Field(i int) any { return s.values[i] }

// Values returns a copy of all field values in declaration order.
func (s *Struct) Values() []any {
	return append([]any(nil), s.values...)
}

func (s *Struct) typed(name string, want ...schema.Kind) (schema.Field, any, error) {
	f, err := s.lookup(name)
	if err != nil {
		return f, nil, err
	}
	for _, k := range want {
		if f.Kind == k {
			return f, s.values[f.Index], nil
		}
	}
	return f, nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(s.desc.QualifiedName(), name).
		Domain(f.Domain()).
		Detail("field is not a %v", want[0]).
		Build()
}

// Uint returns an integer field widened to uint64.
func (s *Struct) Uint(name string) (uint64, error) {
	_, v, err := s.typed(name, schema.KindOctet, schema.KindShort, schema.KindLong, schema.KindLongLong, schema.KindTimestamp)
	if err != nil {
		return 0, err
	}
	return asUint(v), nil
}

// Bool returns a bit field.
func (s *Struct) Bool(name string) (bool, error) {
	_, v, err := s.typed(name, schema.KindBit)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Text returns a shortstr or longstr field.
func (s *Struct) Text(name string) (string, error) {
	_, v, err := s.typed(name, schema.KindShortStr, schema.KindLongStr)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Bytes returns a content or long-struct field.
func (s *Struct) Bytes(name string) ([]byte, error) {
	_, v, err := s.typed(name, schema.KindContent, schema.KindLongStruct)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Table returns a table field.
func (s *Struct) Table(name string) (table.Table, error) {
	_, v, err := s.typed(name, schema.KindTable)
	if err != nil {
		return nil, err
	}
	return v.(table.Table), nil
}

// Nested returns a nested structure field. It is never nil.
func (s *Struct) Nested(name string) (*Struct, error) {
	_, v, err := s.typed(name, schema.KindStruct)
	if err != nil {
		return nil, err
	}
	return v.(*Struct), nil
}

// Sequence returns a sequence-set field.
func (s *Struct) Sequence(name string) (SequenceSet, error) {
	_, v, err := s.typed(name, schema.KindSequenceSet)
	if err != nil {
		return nil, err
	}
	return v.(SequenceSet), nil
}

// Clone returns a copy of s that shares no payloads, sets or nested
// instances with it. Table values are copied one level deep.
func (s *Struct) Clone() *Struct {
	c := &Struct{desc: s.desc, values: make([]any, len(s.values))}
	for i, v := range s.values {
		switch v := v.(type) {
		case *Struct:
			c.values[i] = v.Clone()
		case []byte:
			c.values[i] = append([]byte(nil), v...)
		case SequenceSet:
			c.values[i] = append(SequenceSet(nil), v...)
		case table.Table:
			if v != nil {
				t := make(table.Table, len(v))
				for k, e := range v {
					t[k] = e
				}
				c.values[i] = t
			} else {
				c.values[i] = v
			}
		default:
			c.values[i] = v
		}
	}
	return c
}

// Equal reports whether both instances share a descriptor and hold equal
// values. Nil and empty payloads, tables and sets compare equal.
func (s *Struct) Equal(other *Struct) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.desc != other.desc {
		return false
	}
	for i, v := range s.values {
		if !valueEqual(s.desc.Field(i), v, other.values[i]) {
			return false
		}
	}
	return true
}

// String formats s as "name: field=value; ...".
func (s *Struct) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.desc.Name() + ": " + s.fieldsString()
}

func (s *Struct) fieldsString() string {
	var b strings.Builder
	for i, v := range s.values {
		if i > 0 {
			b.WriteString("; ")
		}
		f := s.desc.Field(i)
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(formatValue(f, v))
	}
	return b.String()
}
