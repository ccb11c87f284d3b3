package table

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/errors"
)

// Type codes of the supported value types.
const (
	CodeInt8    uint8 = 0x01
	CodeUint8   uint8 = 0x02
	CodeBool    uint8 = 0x08
	CodeInt16   uint8 = 0x11
	CodeUint16  uint8 = 0x12
	CodeInt32   uint8 = 0x21
	CodeUint32  uint8 = 0x22
	CodeFloat32 uint8 = 0x23
	CodeInt64   uint8 = 0x31
	CodeUint64  uint8 = 0x32
	CodeFloat64 uint8 = 0x33
	CodeUUID    uint8 = 0x48
	CodeStr16   uint8 = 0x95
	CodeVbin32  uint8 = 0xa0
	CodeMap     uint8 = 0xa8
	CodeVoid    uint8 = 0xf0
)

const (
	maxKey   = math.MaxUint8
	maxStr16 = math.MaxUint16
	maxLong  = math.MaxUint32

	// MaxDepth bounds how deeply maps may nest inside a table.
	MaxDepth = 64
)

// Table is an AMQP field table.
type Table map[string]any

// Keys returns the keys in encoding order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the encoded length of t, including its size prefix.
// Values of unsupported types contribute nothing; Encode rejects them.
func (t Table) Size() int {
	n := 8
	for k, v := range t {
		vs, err := valueSize(v, 1)
		if err != nil {
			continue
		}
		n += 1 + len(k) + 1 + vs
	}
	return n
}

// Encode appends the encoding of t to w. A nil table encodes as an empty one.
// On error nothing is written.
func (t Table) Encode(w *buffer.Writer) error {
	body := 4
	for _, k := range t.Keys() {
		if len(k) > maxKey {
			return errors.New(errors.PhaseEncode, errors.KindOverflow).
				Path(k).
				Domain("shortstr").
				Value(len(k)).
				Detail("key of %d bytes exceeds %d", len(k), maxKey).
				Build()
		}
		vs, err := valueSize(t[k], 1)
		if err != nil {
			return errors.WithPath(err, k)
		}
		body += 1 + len(k) + 1 + vs
	}
	if body > maxLong {
		return errors.Overflow(errors.PhaseEncode, nil, body, "table")
	}

	w.Grow(4 + body)
	w.PutLong(uint32(body))
	w.PutLong(uint32(len(t)))
	for _, k := range t.Keys() {
		w.PutOctet(uint8(len(k)))
		w.PutString(k)
		putValue(w, t[k])
	}
	return nil
}

func valueSize(v any, depth int) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case int8, uint8, bool:
		return 1, nil
	case int16, uint16:
		return 2, nil
	case int32, uint32, float32:
		return 4, nil
	case int64, uint64, float64:
		return 8, nil
	case uuid.UUID:
		return 16, nil
	case string:
		if len(v) > maxStr16 {
			return 0, errors.Overflow(errors.PhaseEncode, nil, len(v), "str16")
		}
		return 2 + len(v), nil
	case []byte:
		if len(v) > maxLong {
			return 0, errors.Overflow(errors.PhaseEncode, nil, len(v), "vbin32")
		}
		return 4 + len(v), nil
	case Table:
		if depth > MaxDepth {
			return 0, errors.New(errors.PhaseEncode, errors.KindOverflow).
				Domain("map").
				Value(depth).
				Detail("maps nested deeper than %d", MaxDepth).
				Build()
		}
		n := 8
		for k, e := range v {
			if len(k) > maxKey {
				return 0, errors.Overflow(errors.PhaseEncode, []string{k}, len(k), "shortstr")
			}
			es, err := valueSize(e, depth+1)
			if err != nil {
				return 0, errors.WithPath(err, k)
			}
			n += 1 + len(k) + 1 + es
		}
		return n, nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "table value")
	}
}

// putValue writes the type code and value. v has passed valueSize.
func putValue(w *buffer.Writer, v any) {
	switch v := v.(type) {
	case nil:
		w.PutOctet(CodeVoid)
	case int8:
		w.PutOctet(CodeInt8)
		w.PutOctet(uint8(v))
	case uint8:
		w.PutOctet(CodeUint8)
		w.PutOctet(v)
	case bool:
		w.PutOctet(CodeBool)
		if v {
			w.PutOctet(1)
		} else {
			w.PutOctet(0)
		}
	case int16:
		w.PutOctet(CodeInt16)
		w.PutShort(uint16(v))
	case uint16:
		w.PutOctet(CodeUint16)
		w.PutShort(v)
	case int32:
		w.PutOctet(CodeInt32)
		w.PutLong(uint32(v))
	case uint32:
		w.PutOctet(CodeUint32)
		w.PutLong(v)
	case float32:
		w.PutOctet(CodeFloat32)
		w.PutLong(math.Float32bits(v))
	case int64:
		w.PutOctet(CodeInt64)
		w.PutLongLong(uint64(v))
	case uint64:
		w.PutOctet(CodeUint64)
		w.PutLongLong(v)
	case float64:
		w.PutOctet(CodeFloat64)
		w.PutLongLong(math.Float64bits(v))
	case uuid.UUID:
		w.PutOctet(CodeUUID)
		w.PutRaw(v[:])
	case string:
		w.PutOctet(CodeStr16)
		w.PutShort(uint16(len(v)))
		w.PutString(v)
	case []byte:
		w.PutOctet(CodeVbin32)
		w.PutLong(uint32(len(v)))
		w.PutRaw(v)
	case Table:
		w.PutOctet(CodeMap)
		_ = v.Encode(w)
	}
}

// Decode reads a table from r. A size prefix larger than the remaining input
// is an underrun; entries that disagree with the size or count are malformed.
func Decode(r *buffer.Reader) (Table, error) {
	return decode(r, 0)
}

func decode(r *buffer.Reader, depth int) (Table, error) {
	if depth > MaxDepth {
		return nil, errors.Malformed(nil, "maps nested deeper than %d", MaxDepth)
	}
	size, err := r.GetLong()
	if err != nil {
		return nil, err
	}
	start := r.Position()
	body, err := r.Sub(int(size))
	if err != nil {
		r.Reset(start - 4)
		return nil, err
	}
	t, err := decodeBody(body, depth)
	if err != nil {
		r.Reset(start - 4)
		return nil, err
	}
	return t, nil
}

func decodeBody(r *buffer.Reader, depth int) (Table, error) {
	count, err := r.GetLong()
	if err != nil {
		return nil, errors.Malformed(nil, "table of %d bytes has no entry count", r.Remaining())
	}
	if int64(count) > int64(r.Remaining()/2) {
		return nil, errors.Malformed(nil, "%d entries cannot fit in %d bytes", count, r.Remaining())
	}

	t := make(Table, count)
	for i := uint32(0); i < count; i++ {
		key, v, err := decodeEntry(r, depth)
		if err != nil {
			if errors.IsUnderrun(err) {
				return nil, errors.Malformed([]string{key}, "entry %d overruns the table", i)
			}
			return nil, err
		}
		if _, dup := t[key]; dup {
			return nil, errors.Malformed([]string{key}, "duplicate key")
		}
		t[key] = v
	}
	if r.Remaining() != 0 {
		return nil, errors.Malformed(nil, "%d bytes left after %d entries", r.Remaining(), count)
	}
	return t, nil
}

func decodeEntry(r *buffer.Reader, depth int) (string, any, error) {
	n, err := r.GetOctet()
	if err != nil {
		return "", nil, err
	}
	key, err := r.GetString(int(n))
	if err != nil {
		return "", nil, err
	}
	code, err := r.GetOctet()
	if err != nil {
		return key, nil, err
	}
	v, err := decodeValue(r, code, depth)
	if err != nil {
		return key, nil, errors.WithPath(err, key)
	}
	return key, v, nil
}

func decodeValue(r *buffer.Reader, code uint8, depth int) (any, error) {
	switch code {
	case CodeVoid:
		return nil, nil
	case CodeInt8:
		v, err := r.GetOctet()
		return int8(v), err
	case CodeUint8:
		return r.GetOctet()
	case CodeBool:
		v, err := r.GetOctet()
		return v != 0, err
	case CodeInt16:
		v, err := r.GetShort()
		return int16(v), err
	case CodeUint16:
		return r.GetShort()
	case CodeInt32:
		v, err := r.GetLong()
		return int32(v), err
	case CodeUint32:
		return r.GetLong()
	case CodeFloat32:
		v, err := r.GetLong()
		return math.Float32frombits(v), err
	case CodeInt64:
		v, err := r.GetLongLong()
		return int64(v), err
	case CodeUint64:
		return r.GetLongLong()
	case CodeFloat64:
		v, err := r.GetLongLong()
		return math.Float64frombits(v), err
	case CodeUUID:
		b, err := r.GetRaw(16)
		if err != nil {
			return nil, err
		}
		return uuid.FromBytes(b)
	case CodeStr16:
		n, err := r.GetShort()
		if err != nil {
			return nil, err
		}
		return r.GetString(int(n))
	case CodeVbin32:
		n, err := r.GetLong()
		if err != nil {
			return nil, err
		}
		return r.GetRaw(int(n))
	case CodeMap:
		return decode(r, depth+1)
	default:
		return nil, errors.Malformed(nil, "unknown type code %#02x", code)
	}
}

// Equal reports whether a and b hold the same entries. A nil table equals an
// empty one.
func Equal(a, b Table) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

// Equal reports whether t and other hold the same entries.
func (t Table) Equal(other Table) bool {
	return Equal(t, other)
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case Table:
		bv, ok := b.(Table)
		return ok && Equal(av, bv)
	case float32:
		bv, ok := b.(float32)
		return ok && math.Float32bits(av) == math.Float32bits(bv)
	case float64:
		bv, ok := b.(float64)
		return ok && math.Float64bits(av) == math.Float64bits(bv)
	default:
		return reflect.DeepEqual(a, b)
	}
}
