package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/errors"
)

const rangeSize = 8

// MaxRanges is the number of ranges a sequence set's 2-byte size prefix can cover.
const MaxRanges = math.MaxUint16 / rangeSize

// Range is an inclusive range of sequence numbers.
type Range struct {
	First uint32
	Last  uint32
}

// Contains reports whether n lies within the range.
func (r Range) Contains(n uint32) bool {
	return n >= r.First && n <= r.Last
}

func (r Range) String() string {
	return "[" + strconv.FormatUint(uint64(r.First), 10) + "," + strconv.FormatUint(uint64(r.Last), 10) + "]"
}

// SequenceSet is an ordered list of sequence number ranges. On the wire it is a
// 2-byte byte count followed by each range as two longs.
type SequenceSet []Range

// NewSequenceSet builds a set of single-number ranges.
func NewSequenceSet(ids ...uint32) SequenceSet {
	s := make(SequenceSet, 0, len(ids))
	for _, id := range ids {
		s = s.add(id, id)
	}
	return s
}

// Add returns s with the range [first, last] appended, merged into the last
// range when they touch. Ranges given out of order are appended as they are.
// The receiver is never modified.
func (s SequenceSet) Add(first, last uint32) SequenceSet {
	return s[:len(s):len(s)].add(first, last)
}

// add may write to s's backing array.
func (s SequenceSet) add(first, last uint32) SequenceSet {
	if first > last {
		first, last = last, first
	}
	n := len(s)
	if n == 0 {
		return append(s, Range{First: first, Last: last})
	}
	tail := s[n-1]
	if first < tail.First || (first > tail.Last && first-tail.Last != 1) {
		return append(s, Range{First: first, Last: last})
	}
	if last <= tail.Last {
		return s
	}
	if cap(s) == n {
		s = append(SequenceSet(nil), s...)
	}
	s[n-1].Last = last
	return s
}

// Contains reports whether any range holds n.
func (s SequenceSet) Contains(n uint32) bool {
	for _, r := range s {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// Size returns the encoded length including the size prefix.
func (s SequenceSet) Size() int {
	return 2 + len(s)*rangeSize
}

// Encode appends the set to w.
func (s SequenceSet) Encode(w *buffer.Writer) error {
	if len(s) > MaxRanges {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Domain("sequence-set").
			Value(len(s)).
			Detail("%d ranges exceed the %d a sequence set can hold", len(s), MaxRanges).
			Build()
	}
	w.Grow(s.Size())
	w.PutShort(uint16(len(s) * rangeSize))
	for _, r := range s {
		w.PutLong(r.First)
		w.PutLong(r.Last)
	}
	return nil
}

// DecodeSequenceSet reads a set from r. On error r is left where it was.
func DecodeSequenceSet(r *buffer.Reader) (SequenceSet, error) {
	start := r.Position()
	n, err := r.GetShort()
	if err != nil {
		return nil, err
	}
	if n%rangeSize != 0 {
		r.Reset(start)
		return nil, errors.Malformed(nil, "sequence set size %d is not a multiple of %d", n, rangeSize)
	}
	body, err := r.Sub(int(n))
	if err != nil {
		r.Reset(start)
		return nil, err
	}

	s := make(SequenceSet, 0, int(n)/rangeSize)
	for body.Remaining() > 0 {
		first, _ := body.GetLong()
		last, _ := body.GetLong()
		s = append(s, Range{First: first, Last: last})
	}
	return s, nil
}

// Equal reports whether both sets hold the same ranges in the same order.
// A nil set equals an empty one.
func (s SequenceSet) Equal(other SequenceSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s SequenceSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, r := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteByte('}')
	return b.String()
}
