package codec

import (
	"math"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/schema"
	"github.com/wippyai/amqp-codec/table"
)

func prefixLimit(width int) uint64 {
	if width == 1 {
		return math.MaxUint8
	}
	return math.MaxUint32
}

func payloadOverflow(f schema.Field, n int) error {
	return errors.New(errors.PhaseEncode, errors.KindOverflow).
		Path(f.Name).
		Domain(f.Domain()).
		Value(n).
		Detail("payload of %d bytes exceeds the %d-byte length prefix", n, f.Class.Width).
		Build()
}

func encodeValue(w *buffer.Writer, f schema.Field, v any) error {
	switch f.Kind {
	case schema.KindOctet, schema.KindShort, schema.KindLong, schema.KindLongLong, schema.KindTimestamp:
		w.PutUint(f.Class.Width, asUint(v))

	case schema.KindShortStr, schema.KindLongStr:
		str, _ := v.(string)
		if uint64(len(str)) > prefixLimit(f.Class.Width) {
			return payloadOverflow(f, len(str))
		}
		w.PutUint(f.Class.Width, uint64(len(str)))
		w.PutString(str)

	case schema.KindContent, schema.KindLongStruct:
		b, _ := v.([]byte)
		if uint64(len(b)) > prefixLimit(f.Class.Width) {
			return payloadOverflow(f, len(b))
		}
		w.PutUint(f.Class.Width, uint64(len(b)))
		w.PutRaw(b)

	case schema.KindTable:
		t, _ := v.(table.Table)
		if err := t.Encode(w); err != nil {
			return errors.WithPath(err, f.Name)
		}

	case schema.KindStruct:
		if err := encodeStruct(w, v.(*Struct)); err != nil {
			return errors.WithPath(err, f.Name)
		}

	case schema.KindSequenceSet:
		set, _ := v.(SequenceSet)
		if err := set.Encode(w); err != nil {
			return errors.WithPath(err, f.Name)
		}
	}
	return nil
}

func decodeValue(r *buffer.Reader, f schema.Field) (any, error) {
	switch f.Kind {
	case schema.KindOctet:
		return r.GetOctet()
	case schema.KindShort:
		return r.GetShort()
	case schema.KindLong:
		return r.GetLong()
	case schema.KindLongLong, schema.KindTimestamp:
		return r.GetLongLong()

	case schema.KindShortStr, schema.KindLongStr:
		n, err := r.GetUint(f.Class.Width)
		if err != nil {
			return nil, err
		}
		if n > uint64(r.Remaining()) {
			return nil, errors.Underrun(nil, int(n), r.Remaining())
		}
		return r.GetString(int(n))

	case schema.KindContent, schema.KindLongStruct:
		n, err := r.GetUint(f.Class.Width)
		if err != nil {
			return nil, err
		}
		if n > uint64(r.Remaining()) {
			return nil, errors.Underrun(nil, int(n), r.Remaining())
		}
		return r.GetRaw(int(n))

	case schema.KindTable:
		return table.Decode(r)

	case schema.KindStruct:
		return decodeStruct(f.Struct, r)

	case schema.KindSequenceSet:
		return DecodeSequenceSet(r)
	}
	return nil, errors.Malformed(nil, "no decoder for domain %s", f.Domain())
}

func valueSize(f schema.Field, v any) int {
	switch f.Class.Category {
	case schema.CategoryScalar:
		return f.Class.Width
	case schema.CategoryVariable:
		switch v := v.(type) {
		case string:
			return f.Class.Width + len(v)
		case []byte:
			return f.Class.Width + len(v)
		case table.Table:
			return v.Size()
		}
		return f.Class.Width
	case schema.CategoryNested:
		switch v := v.(type) {
		case *Struct:
			return structSize(v)
		case SequenceSet:
			return v.Size()
		}
	}
	return 0
}
