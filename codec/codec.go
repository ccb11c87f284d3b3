package codec

import (
	"go.uber.org/zap"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/schema"
)

// Encode appends exactly Size() bytes to w. If a value cannot be represented,
// such as a shortstr longer than 255 bytes, nothing is left in w.
func (s *Struct) Encode(w *buffer.Writer) error {
	start := w.Len()
	w.Grow(structSize(s))
	if err := encodeStruct(w, s); err != nil {
		w.Truncate(start)
		return errors.WithPath(err, s.desc.QualifiedName())
	}
	return nil
}

// Size returns the number of bytes Encode would write.
func (s *Struct) Size() int {
	return structSize(s)
}

func encodeStruct(w *buffer.Writer, s *Struct) error {
	if s.desc.Packed() {
		return encodePacked(w, s)
	}
	return encodeUnpacked(w, s)
}

func structSize(s *Struct) int {
	if s.desc.Packed() {
		return sizePacked(s)
	}
	return sizeUnpacked(s)
}

func decodeStruct(desc *schema.Structure, r *buffer.Reader) (*Struct, error) {
	s := New(desc)
	var err error
	if desc.Packed() {
		err = decodePacked(r, s)
	} else {
		err = decodeUnpacked(r, s)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Decode reads an instance of desc from r. On error the reader is left at its
// starting position, so an underrun can be retried once more data arrives.
func Decode(desc *schema.Structure, r *buffer.Reader) (*Struct, error) {
	start := r.Position()
	s, err := decodeStruct(desc, r)
	if err != nil {
		r.Reset(start)
		Logger().Debug("decode failed",
			zap.String("structure", desc.QualifiedName()),
			zap.Int("position", start),
			zap.Error(err))
		return nil, errors.WithPath(err, desc.QualifiedName())
	}
	return s, nil
}

// Marshal returns the encoding of s.
func Marshal(s *Struct) ([]byte, error) {
	w := getWriter()
	defer putWriter(w)

	if err := s.Encode(w); err != nil {
		return nil, err
	}
	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

// Unmarshal decodes data as exactly one instance of desc.
func Unmarshal(desc *schema.Structure, data []byte) (*Struct, error) {
	r := buffer.NewReader(data)
	s, err := Decode(desc, r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errors.Malformed([]string{desc.QualifiedName()},
			"%d trailing bytes after %d-byte structure", r.Remaining(), r.Position())
	}
	return s, nil
}
