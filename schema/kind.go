package schema

import "github.com/wippyai/amqp-codec/errors"

// Kind is the domain type of a field.
type Kind uint8

const (
	KindOctet Kind = iota
	KindShort
	KindLong
	KindLongLong
	KindTimestamp
	KindShortStr
	KindLongStr
	KindTable
	KindContent
	KindLongStruct
	KindBit
	KindStruct
	KindSequenceSet
)

var kindNames = [...]string{
	KindOctet:       "octet",
	KindShort:       "short",
	KindLong:        "long",
	KindLongLong:    "longlong",
	KindTimestamp:   "timestamp",
	KindShortStr:    "shortstr",
	KindLongStr:     "longstr",
	KindTable:       "table",
	KindContent:     "content",
	KindLongStruct:  "long-struct",
	KindBit:         "bit",
	KindStruct:      "struct",
	KindSequenceSet: "sequence-set",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a domain type tag to its Kind.
func ParseKind(tag string) (Kind, error) {
	for k, name := range kindNames {
		if name == tag {
			return Kind(k), nil
		}
	}
	return 0, errors.UnknownDomain(nil, tag)
}

// Category is the wire representation family of a domain type.
type Category uint8

const (
	CategoryScalar Category = iota
	CategoryVariable
	CategoryBit
	CategoryNested
)

func (c Category) String() string {
	switch c {
	case CategoryScalar:
		return "scalar"
	case CategoryVariable:
		return "variable"
	case CategoryBit:
		return "bit"
	case CategoryNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Class is the classification of a domain type.
//
// Width is the fixed byte width for scalars and the length-prefix width for
// variable payloads. It is zero for bits and nested structures.
type Class struct {
	Category Category
	Width    int
}

// Classify returns the wire classification of k.
func Classify(k Kind) (Class, error) {
	switch k {
	case KindOctet:
		return Class{Category: CategoryScalar, Width: 1}, nil
	case KindShort:
		return Class{Category: CategoryScalar, Width: 2}, nil
	case KindLong:
		return Class{Category: CategoryScalar, Width: 4}, nil
	case KindLongLong, KindTimestamp:
		return Class{Category: CategoryScalar, Width: 8}, nil
	case KindShortStr:
		return Class{Category: CategoryVariable, Width: 1}, nil
	case KindLongStr, KindTable, KindContent, KindLongStruct:
		return Class{Category: CategoryVariable, Width: 4}, nil
	case KindBit:
		return Class{Category: CategoryBit}, nil
	case KindStruct, KindSequenceSet:
		return Class{Category: CategoryNested}, nil
	default:
		return Class{}, errors.UnknownDomain(nil, k.String())
	}
}
