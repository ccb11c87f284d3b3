package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wippyai/amqp-codec/codec"
	"github.com/wippyai/amqp-codec/schema"
	"github.com/wippyai/amqp-codec/table"
)

// assignments collects repeated -set name=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, " ") }

func (a *assignments) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	*a = append(*a, v)
	return nil
}

// leaf is a settable field reached through zero or more nested structures.
type leaf struct {
	path  string
	field schema.Field
}

// leaves lists every non-struct field of desc, nested fields as dotted paths.
func leaves(desc *schema.Structure) []leaf {
	var out []leaf
	for _, f := range desc.Fields() {
		if f.Kind == schema.KindStruct {
			for _, l := range leaves(f.Struct) {
				out = append(out, leaf{path: f.Name + "." + l.path, field: l.field})
			}
			continue
		}
		out = append(out, leaf{path: f.Name, field: f})
	}
	return out
}

// assign parses text for the field at a dotted path and stores it in s.
func assign(s *codec.Struct, path, text string) error {
	name, rest, nested := strings.Cut(path, ".")
	if nested {
		inner, err := s.Nested(name)
		if err != nil {
			return err
		}
		return assign(inner, rest, text)
	}
	f, ok := s.Descriptor().FieldByName(name)
	if !ok {
		return fmt.Errorf("%s has no field %q", s.Descriptor().QualifiedName(), name)
	}
	v, err := parseValue(f, text)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return s.Set(name, v)
}

// parseValue converts command-line text to the canonical value of f.
func parseValue(f schema.Field, text string) (any, error) {
	switch f.Class.Category {
	case schema.CategoryScalar:
		n, err := strconv.ParseUint(text, 0, f.Class.Width*8)
		if err != nil {
			return nil, err
		}
		return n, nil
	case schema.CategoryBit:
		if text == "" {
			return false, nil
		}
		return strconv.ParseBool(text)
	}

	switch f.Kind {
	case schema.KindShortStr, schema.KindLongStr:
		return text, nil
	case schema.KindContent, schema.KindLongStruct:
		return parseBytes(text)
	case schema.KindTable:
		return parseTable(text)
	case schema.KindSequenceSet:
		return parseSequenceSet(text)
	}
	return nil, fmt.Errorf("cannot parse a %s from text", f.Domain())
}

// parseBytes accepts 0x-prefixed hex or literal text.
func parseBytes(text string) ([]byte, error) {
	if h, ok := strings.CutPrefix(text, "0x"); ok {
		return hex.DecodeString(h)
	}
	return []byte(text), nil
}

// parseTable reads "key:value,key:value". Values that look like integers
// become int64, UUIDs become uuid.UUID, true/false become bool, anything
// else is a string.
func parseTable(text string) (table.Table, error) {
	t := table.Table{}
	if text == "" {
		return t, nil
	}
	for _, entry := range strings.Split(text, ",") {
		k, v, ok := strings.Cut(entry, ":")
		if !ok || k == "" {
			return nil, fmt.Errorf("table entry %q is not key:value", entry)
		}
		t[k] = tableValue(v)
	}
	return t, nil
}

func tableValue(v string) any {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if id, err := uuid.Parse(v); err == nil {
		return id
	}
	return v
}

// parseSequenceSet reads "1-3,7,9-12".
func parseSequenceSet(text string) (codec.SequenceSet, error) {
	var set codec.SequenceSet
	if text == "" {
		return set, nil
	}
	for _, part := range strings.Split(text, ",") {
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.ParseUint(lo, 10, 32)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = strconv.ParseUint(hi, 10, 32); err != nil {
				return nil, err
			}
		}
		set = set.Add(uint32(first), uint32(last))
	}
	return set, nil
}

// parseHex decodes hex input, ignoring spaces and an optional 0x prefix.
func parseHex(text string) ([]byte, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "0x")
	text = strings.Join(strings.Fields(text), "")
	return hex.DecodeString(text)
}
