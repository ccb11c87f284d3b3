package framing

import (
	"go.uber.org/zap"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/codec"
	"github.com/wippyai/amqp-codec/errors"
)

// EncodeMethod writes the class id, the method id and the body of m.
func EncodeMethod(w *buffer.Writer, m *codec.Struct) error {
	desc := m.Descriptor()
	if !desc.IsMethod() {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(desc.QualifiedName()).
			Detail("not a method body").
			Build()
	}
	start := w.Len()
	w.Grow(2 + m.Size())
	w.PutOctet(desc.ClassID())
	w.PutOctet(desc.MethodID())
	if err := m.Encode(w); err != nil {
		w.Truncate(start)
		return err
	}
	return nil
}

// MethodSize returns the number of bytes EncodeMethod writes for m.
func MethodSize(m *codec.Struct) int {
	return 2 + m.Size()
}

// DecodeMethod reads a method body framed by EncodeMethod. On error r is left
// at its starting position.
func DecodeMethod(r *buffer.Reader) (*codec.Struct, error) {
	start := r.Position()
	classID, err := r.GetOctet()
	if err != nil {
		return nil, err
	}
	methodID, err := r.GetOctet()
	if err != nil {
		r.Reset(start)
		return nil, err
	}
	desc, err := registry.Method(classID, methodID)
	if err != nil {
		r.Reset(start)
		Logger().Debug("unknown method",
			zap.Uint8("class", classID),
			zap.Uint8("method", methodID))
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "unknown method")
	}
	m, err := codec.Decode(desc, r)
	if err != nil {
		r.Reset(start)
		return nil, err
	}
	return m, nil
}

// EncodeStruct32 writes s in struct32 form: a 4-byte size covering the type
// code and body, the 2-byte type code, then the packed body.
func EncodeStruct32(w *buffer.Writer, s *codec.Struct) error {
	desc := s.Descriptor()
	if !desc.HasTypeCode() {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(desc.QualifiedName()).
			Detail("structure has no type code").
			Build()
	}
	start := w.Len()
	size := 2 + s.Size()
	w.Grow(4 + size)
	w.PutLong(uint32(size))
	w.PutShort(desc.TypeCode())
	if err := s.Encode(w); err != nil {
		w.Truncate(start)
		return err
	}
	return nil
}

// Struct32Size returns the number of bytes EncodeStruct32 writes for s.
func Struct32Size(s *codec.Struct) int {
	return 6 + s.Size()
}

// DecodeStruct32 reads a struct32 entry and decodes it with the built-in
// structure its type code names.
func DecodeStruct32(r *buffer.Reader) (*codec.Struct, error) {
	start := r.Position()
	size, err := r.GetLong()
	if err != nil {
		return nil, err
	}
	body, err := r.Sub(int(size))
	if err != nil {
		r.Reset(start)
		return nil, err
	}
	s, err := decodeTyped(body)
	if err != nil {
		r.Reset(start)
		return nil, err
	}
	return s, nil
}

// decodeTyped decodes a type code and body that must fill r exactly.
func decodeTyped(r *buffer.Reader) (*codec.Struct, error) {
	code, err := r.GetShort()
	if err != nil {
		return nil, errors.Malformed(nil, "struct32 of %d bytes has no type code", r.Remaining())
	}
	desc, err := registry.Struct(code)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "unknown structure type")
	}
	s, err := codec.Decode(desc, r)
	if err != nil {
		if errors.IsUnderrun(err) {
			return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "body overruns its size")
		}
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errors.Malformed([]string{desc.QualifiedName()}, "%d bytes left in struct32", r.Remaining())
	}
	return s, nil
}

// MarshalLongStruct returns the long-struct payload of s: its type code
// followed by its body. This is the value carried by long-struct fields such
// as execution.result's value; the field supplies the size prefix.
func MarshalLongStruct(s *codec.Struct) ([]byte, error) {
	w := buffer.NewWriter(Struct32Size(s))
	if err := EncodeStruct32(w, s); err != nil {
		return nil, err
	}
	return w.Bytes()[4:], nil
}

// UnmarshalLongStruct decodes a long-struct payload produced by MarshalLongStruct.
func UnmarshalLongStruct(payload []byte) (*codec.Struct, error) {
	return decodeTyped(buffer.NewReader(payload))
}

// EncodeHeader writes a header segment: each structure in struct32 form.
func EncodeHeader(w *buffer.Writer, entries ...*codec.Struct) error {
	start := w.Len()
	for _, s := range entries {
		if err := EncodeStruct32(w, s); err != nil {
			w.Truncate(start)
			return err
		}
	}
	return nil
}

// DecodeHeader reads struct32 entries until r is exhausted.
func DecodeHeader(r *buffer.Reader) ([]*codec.Struct, error) {
	start := r.Position()
	var entries []*codec.Struct
	for r.Remaining() > 0 {
		s, err := DecodeStruct32(r)
		if err != nil {
			r.Reset(start)
			return nil, err
		}
		entries = append(entries, s)
	}
	return entries, nil
}
