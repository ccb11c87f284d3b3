package buffer

import "encoding/binary"

// Writer is an append-only, growable big-endian byte buffer.
type Writer struct {
	buf []byte
}

// NewWriter creates a Writer with room for size bytes before it has to grow.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns the written bytes. The slice aliases the writer's storage.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Cap returns the capacity of the underlying storage.
func (w *Writer) Cap() int {
	return cap(w.buf)
}

// Reset discards all written bytes, keeping the allocated storage.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Truncate discards all but the first n written bytes.
func (w *Writer) Truncate(n int) {
	if n < 0 || n > len(w.buf) {
		panic("buffer: truncation out of range")
	}
	w.buf = w.buf[:n]
}

// Grow ensures space for another n bytes without reallocation.
func (w *Writer) Grow(n int) {
	if cap(w.buf)-len(w.buf) >= n {
		return
	}
	next := make([]byte, len(w.buf), 2*cap(w.buf)+n)
	copy(next, w.buf)
	w.buf = next
}

// PutOctet writes a single byte.
func (w *Writer) PutOctet(v uint8) {
	w.buf = append(w.buf, v)
}

// PutShort writes a 2-byte unsigned integer.
func (w *Writer) PutShort(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// PutLong writes a 4-byte unsigned integer.
func (w *Writer) PutLong(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// PutLongLong writes an 8-byte unsigned integer.
func (w *Writer) PutLongLong(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

// PutUint writes the low width bytes of v. Width must be 1, 2, 4 or 8.
func (w *Writer) PutUint(width int, v uint64) {
	switch width {
	case 1:
		w.PutOctet(uint8(v))
	case 2:
		w.PutShort(uint16(v))
	case 4:
		w.PutLong(uint32(v))
	case 8:
		w.PutLongLong(v)
	default:
		panic("buffer: unsupported integer width")
	}
}

// PutRaw writes data without a length prefix.
func (w *Writer) PutRaw(data []byte) {
	w.buf = append(w.buf, data...)
}

// PutString writes s without a length prefix.
func (w *Writer) PutString(s string) {
	w.buf = append(w.buf, s...)
}
