package codec

import (
	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/errors"
)

// Flags computes the flags word of a packed instance. Bit fields contribute
// their value; every other field contributes whether it is non-zero or
// non-empty. It returns 0 for unpacked structures.
func Flags(s *Struct) uint64 {
	if !s.desc.Packed() {
		return 0
	}
	var flags uint64
	for i, v := range s.values {
		if present(s.desc.Field(i), v) {
			flags |= s.desc.FlagMask(i)
		}
	}
	return flags
}

func encodePacked(w *buffer.Writer, s *Struct) error {
	flags := Flags(s)
	w.PutUint(s.desc.PackWidth(), flags)
	for i, v := range s.values {
		f := s.desc.Field(i)
		if f.IsBit() || flags&s.desc.FlagMask(i) == 0 {
			continue
		}
		if err := encodeValue(w, f, v); err != nil {
			return errors.WithPath(err, f.Name)
		}
	}
	return nil
}

func decodePacked(r *buffer.Reader, s *Struct) error {
	flags, err := r.GetUint(s.desc.PackWidth())
	if err != nil {
		return err
	}
	for i := range s.values {
		f := s.desc.Field(i)
		set := flags&s.desc.FlagMask(i) != 0
		if f.IsBit() {
			s.values[i] = set
			continue
		}
		if !set {
			continue
		}
		v, err := decodeValue(r, f)
		if err != nil {
			return errors.WithPath(err, f.Name)
		}
		s.values[i] = v
	}
	return nil
}

func sizePacked(s *Struct) int {
	n := s.desc.PackWidth()
	for i, v := range s.values {
		f := s.desc.Field(i)
		if f.IsBit() || !present(f, v) {
			continue
		}
		n += valueSize(f, v)
	}
	return n
}
