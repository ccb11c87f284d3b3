package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/schema"
	"github.com/wippyai/amqp-codec/table"
)

// zeroValue returns the domain zero value of f in its canonical Go type.
func zeroValue(f schema.Field) any {
	switch f.Kind {
	case schema.KindOctet:
		return uint8(0)
	case schema.KindShort:
		return uint16(0)
	case schema.KindLong:
		return uint32(0)
	case schema.KindLongLong, schema.KindTimestamp:
		return uint64(0)
	case schema.KindShortStr, schema.KindLongStr:
		return ""
	case schema.KindContent, schema.KindLongStruct:
		return []byte(nil)
	case schema.KindTable:
		return table.Table(nil)
	case schema.KindBit:
		return false
	case schema.KindStruct:
		return New(f.Struct)
	case schema.KindSequenceSet:
		return SequenceSet(nil)
	default:
		return nil
	}
}

// convert checks v against the domain of f and returns it in canonical form.
func convert(f schema.Field, v any) (any, error) {
	switch f.Kind {
	case schema.KindOctet, schema.KindShort, schema.KindLong, schema.KindLongLong, schema.KindTimestamp:
		return convertUint(f, v)

	case schema.KindShortStr, schema.KindLongStr:
		switch v := v.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case nil:
			return "", nil
		}

	case schema.KindContent, schema.KindLongStruct:
		switch v := v.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		case nil:
			return []byte(nil), nil
		}

	case schema.KindTable:
		switch v := v.(type) {
		case table.Table:
			return v, nil
		case map[string]any:
			return table.Table(v), nil
		case nil:
			return table.Table(nil), nil
		}

	case schema.KindBit:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case schema.KindStruct:
		switch v := v.(type) {
		case *Struct:
			if v == nil {
				return New(f.Struct), nil
			}
			if v.desc == f.Struct {
				return v, nil
			}
			return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(f.Name).
				GoType("*codec.Struct(" + v.desc.QualifiedName() + ")").
				Domain(f.Domain()).
				Build()
		case nil:
			return New(f.Struct), nil
		}

	case schema.KindSequenceSet:
		switch v := v.(type) {
		case SequenceSet:
			return v, nil
		case []Range:
			return SequenceSet(v), nil
		case nil:
			return SequenceSet(nil), nil
		}
	}

	return nil, errors.TypeMismatch(errors.PhaseEncode, []string{f.Name}, fmt.Sprintf("%T", v), f.Domain())
}

func convertUint(f schema.Field, v any) (any, error) {
	var (
		n   uint64
		neg bool
	)
	switch v := v.(type) {
	case uint8:
		n = uint64(v)
	case uint16:
		n = uint64(v)
	case uint32:
		n = uint64(v)
	case uint64:
		n = v
	case uint:
		n = uint64(v)
	case int8:
		n, neg = uint64(v), v < 0
	case int16:
		n, neg = uint64(v), v < 0
	case int32:
		n, neg = uint64(v), v < 0
	case int64:
		n, neg = uint64(v), v < 0
	case int:
		n, neg = uint64(v), v < 0
	default:
		return nil, errors.TypeMismatch(errors.PhaseEncode, []string{f.Name}, fmt.Sprintf("%T", v), f.Domain())
	}

	if neg || n > maxUint(f.Class.Width) {
		return nil, errors.Overflow(errors.PhaseEncode, []string{f.Name}, v, f.Domain())
	}

	switch f.Class.Width {
	case 1:
		return uint8(n), nil
	case 2:
		return uint16(n), nil
	case 4:
		return uint32(n), nil
	default:
		return n, nil
	}
}

func maxUint(width int) uint64 {
	if width >= 8 {
		return math.MaxUint64
	}
	return 1<<(uint(width)*8) - 1
}

// asUint widens a canonical scalar value.
func asUint(v any) uint64 {
	switch v := v.(type) {
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	default:
		return 0
	}
}

// present reports whether a value carries data: non-zero scalars, true bits,
// non-empty payloads, tables and sets, and nested structures with at least one
// present field.
func present(f schema.Field, v any) bool {
	switch f.Class.Category {
	case schema.CategoryBit:
		b, _ := v.(bool)
		return b
	case schema.CategoryScalar:
		return asUint(v) != 0
	case schema.CategoryVariable:
		switch v := v.(type) {
		case string:
			return len(v) > 0
		case []byte:
			return len(v) > 0
		case table.Table:
			return len(v) > 0
		}
		return false
	case schema.CategoryNested:
		switch v := v.(type) {
		case *Struct:
			return structSize(v) != 0
		case SequenceSet:
			return len(v) > 0
		}
	}
	return false
}

func valueEqual(f schema.Field, a, b any) bool {
	switch f.Kind {
	case schema.KindContent, schema.KindLongStruct:
		ab, _ := a.([]byte)
		bb, _ := b.([]byte)
		return bytes.Equal(ab, bb)
	case schema.KindTable:
		at, _ := a.(table.Table)
		bt, _ := b.(table.Table)
		return table.Equal(at, bt)
	case schema.KindStruct:
		as, _ := a.(*Struct)
		bs, _ := b.(*Struct)
		return as.Equal(bs)
	case schema.KindSequenceSet:
		as, _ := a.(SequenceSet)
		bs, _ := b.(SequenceSet)
		return as.Equal(bs)
	default:
		return a == b
	}
}

func formatValue(f schema.Field, v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case []byte:
		return fmt.Sprintf("%x", v)
	case *Struct:
		return "{" + v.fieldsString() + "}"
	case table.Table:
		return fmt.Sprint(map[string]any(v))
	case nil:
		return "<" + f.Domain() + ">"
	default:
		return fmt.Sprint(v)
	}
}
