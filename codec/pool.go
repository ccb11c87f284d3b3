package codec

import (
	"sync"

	"github.com/wippyai/amqp-codec/buffer"
)

const (
	// Writers that grew past this are dropped instead of pooled.
	poolMaxCap  = 64 << 10
	poolInitCap = 256
)

var writerPool = sync.Pool{
	New: func() any {
		return buffer.NewWriter(poolInitCap)
	},
}

func getWriter() *buffer.Writer {
	return writerPool.Get().(*buffer.Writer)
}

func putWriter(w *buffer.Writer) {
	if w == nil || w.Cap() > poolMaxCap {
		return
	}
	w.Reset()
	writerPool.Put(w)
}
