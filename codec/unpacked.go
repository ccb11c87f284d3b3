package codec

import (
	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/schema"
)

func encodeUnpacked(w *buffer.Writer, s *Struct) error {
	for _, u := range s.desc.Units() {
		if u.Kind == schema.UnitBitRun {
			var bits uint8
			for k, f := range u.Fields {
				if b, _ := s.values[f.Index].(bool); b {
					bits |= 1 << uint(k)
				}
			}
			w.PutOctet(bits)
			continue
		}
		f := u.Field()
		if err := encodeValue(w, f, s.values[f.Index]); err != nil {
			return errors.WithPath(err, f.Name)
		}
	}
	return nil
}

func decodeUnpacked(r *buffer.Reader, s *Struct) error {
	for _, u := range s.desc.Units() {
		if u.Kind == schema.UnitBitRun {
			bits, err := r.GetOctet()
			if err != nil {
				return errors.WithPath(err, u.Fields[0].Name)
			}
			for k, f := range u.Fields {
				s.values[f.Index] = bits&(1<<uint(k)) != 0
			}
			continue
		}
		f := u.Field()
		v, err := decodeValue(r, f)
		if err != nil {
			return errors.WithPath(err, f.Name)
		}
		s.values[f.Index] = v
	}
	return nil
}

func sizeUnpacked(s *Struct) int {
	n := 0
	for _, u := range s.desc.Units() {
		if u.Kind == schema.UnitBitRun {
			n++
			continue
		}
		f := u.Field()
		n += valueSize(f, s.values[f.Index])
	}
	return n
}
