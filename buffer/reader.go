package buffer

import (
	"encoding/binary"

	"github.com/wippyai/amqp-codec/errors"
)

// Reader is a bounds-checked big-endian cursor over a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Reset seeks to the given offset.
func (r *Reader) Reset(pos int) {
	if pos < 0 || pos > len(r.data) {
		panic("buffer: reset out of range")
	}
	r.pos = pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.Underrun(nil, n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// GetOctet reads a single byte.
func (r *Reader) GetOctet() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetShort reads a 2-byte unsigned integer.
func (r *Reader) GetShort() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// GetLong reads a 4-byte unsigned integer.
func (r *Reader) GetLong() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// GetLongLong reads an 8-byte unsigned integer.
func (r *Reader) GetLongLong() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// GetUint reads a width-byte unsigned integer. Width must be 1, 2, 4 or 8.
func (r *Reader) GetUint(width int) (uint64, error) {
	switch width {
	case 1:
		v, err := r.GetOctet()
		return uint64(v), err
	case 2:
		v, err := r.GetShort()
		return uint64(v), err
	case 4:
		v, err := r.GetLong()
		return uint64(v), err
	case 8:
		return r.GetLongLong()
	default:
		panic("buffer: unsupported integer width")
	}
}

// GetRaw reads exactly n bytes into a freshly allocated slice.
func (r *Reader) GetRaw(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// GetString reads exactly n bytes as a string.
func (r *Reader) GetString(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Sub consumes the next n bytes and returns a Reader bounded to them.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	return &Reader{data: b}, nil
}
