package amqpcodec

import "github.com/wippyai/amqp-codec/buffer"

// Sizer reports the encoded length of a value.
type Sizer interface {
	Size() int
}

// Encoder appends its wire form to a writer. It writes exactly Size() bytes
// on success and nothing on failure.
type Encoder interface {
	Sizer
	Encode(w *buffer.Writer) error
}

// EncodeAll encodes values back to back. On error w is restored to its
// starting length.
func EncodeAll(w *buffer.Writer, values ...Encoder) error {
	start := w.Len()
	total := 0
	for _, v := range values {
		total += v.Size()
	}
	w.Grow(total)
	for _, v := range values {
		if err := v.Encode(w); err != nil {
			w.Truncate(start)
			return err
		}
	}
	return nil
}
