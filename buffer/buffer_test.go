package buffer

import (
	"bytes"
	"testing"

	"github.com/wippyai/amqp-codec/errors"
)

func TestWriterBigEndian(t *testing.T) {
	w := NewWriter(0)
	w.PutOctet(0x01)
	w.PutShort(0x0203)
	w.PutLong(0x04050607)
	w.PutLongLong(0x08090a0b0c0d0e0f)
	w.PutRaw([]byte{0x10})
	w.PutString("A")

	want := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10,
		'A',
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = % x, want % x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", w.Len(), len(want))
	}
}

func TestWriterPutUint(t *testing.T) {
	tests := []struct {
		name  string
		width int
		value uint64
		want  []byte
	}{
		{"1", 1, 0x81, []byte{0x81}},
		{"2", 2, 0x0102, []byte{0x01, 0x02}},
		{"4", 4, 0x01020304, []byte{0x01, 0x02, 0x03, 0x04}},
		{"8", 8, 0x0102030405060708, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(8)
			w.PutUint(tt.width, tt.value)
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("PutUint(%d, %#x) = % x, want % x", tt.width, tt.value, w.Bytes(), tt.want)
			}

			r := NewReader(w.Bytes())
			got, err := r.GetUint(tt.width)
			if err != nil {
				t.Fatalf("GetUint: %v", err)
			}
			if got != tt.value {
				t.Errorf("GetUint(%d) = %#x, want %#x", tt.width, got, tt.value)
			}
		})
	}
}

func TestWriterTruncateAndReset(t *testing.T) {
	w := NewWriter(4)
	w.PutLong(0xdeadbeef)
	w.Truncate(1)
	if !bytes.Equal(w.Bytes(), []byte{0xde}) {
		t.Errorf("after Truncate(1): % x", w.Bytes())
	}
	w.Reset()
	if w.Len() != 0 {
		t.Errorf("after Reset: Len() = %d", w.Len())
	}
}

func TestWriterGrowKeepsContent(t *testing.T) {
	w := NewWriter(1)
	w.PutOctet(7)
	w.Grow(64)
	if w.Len() != 1 || w.Bytes()[0] != 7 {
		t.Errorf("Grow lost content: % x", w.Bytes())
	}
}

func TestReaderSequence(t *testing.T) {
	r := NewReader([]byte{0xff, 0x00, 0x10, 0, 0, 0, 2, 'h', 'i'})

	o, err := r.GetOctet()
	if err != nil || o != 0xff {
		t.Fatalf("GetOctet = %d, %v", o, err)
	}
	s, err := r.GetShort()
	if err != nil || s != 0x0010 {
		t.Fatalf("GetShort = %#x, %v", s, err)
	}
	l, err := r.GetLong()
	if err != nil || l != 2 {
		t.Fatalf("GetLong = %d, %v", l, err)
	}
	str, err := r.GetString(int(l))
	if err != nil || str != "hi" {
		t.Fatalf("GetString = %q, %v", str, err)
	}
	if r.Position() != 9 || r.Remaining() != 0 {
		t.Errorf("Position=%d Remaining=%d", r.Position(), r.Remaining())
	}
}

func TestReaderUnderrun(t *testing.T) {
	tests := []struct {
		name string
		read func(r *Reader) error
	}{
		{"octet", func(r *Reader) error { _, err := r.GetOctet(); return err }},
		{"short", func(r *Reader) error { _, err := r.GetShort(); return err }},
		{"long", func(r *Reader) error { _, err := r.GetLong(); return err }},
		{"longlong", func(r *Reader) error { _, err := r.GetLongLong(); return err }},
		{"raw", func(r *Reader) error { _, err := r.GetRaw(5); return err }},
		{"sub", func(r *Reader) error { _, err := r.Sub(5); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(nil)
			err := tt.read(r)
			if !errors.IsUnderrun(err) {
				t.Fatalf("expected underrun, got %v", err)
			}
			if r.Position() != 0 {
				t.Errorf("failed read advanced position to %d", r.Position())
			}
		})
	}
}

func TestReaderGetRawCopies(t *testing.T) {
	data := []byte{1, 2, 3}
	r := NewReader(data)
	got, err := r.GetRaw(3)
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	data[0] = 9
	if got[0] != 1 {
		t.Error("GetRaw result aliases the source slice")
	}
}

func TestReaderSubIsBounded(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	sub, err := r.Sub(2)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if sub.Remaining() != 2 || r.Remaining() != 2 {
		t.Fatalf("sub.Remaining=%d r.Remaining=%d", sub.Remaining(), r.Remaining())
	}
	if _, err := sub.GetLong(); !errors.IsUnderrun(err) {
		t.Errorf("sub reader read past its bound: %v", err)
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.GetShort(); err != nil {
		t.Fatal(err)
	}
	r.Reset(1)
	b, err := r.GetOctet()
	if err != nil || b != 2 {
		t.Errorf("after Reset(1): %d, %v", b, err)
	}
}
