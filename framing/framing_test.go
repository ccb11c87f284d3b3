package framing

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/codec"
	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/table"
)

func TestRegistry_References(t *testing.T) {
	for _, s := range Registry().All() {
		if s.ResultExpected() {
			if _, err := ResultOf(s); err != nil {
				t.Errorf("%s: result %q: %v", s.QualifiedName(), s.ResultType(), err)
			}
		}
		for _, name := range s.Responses() {
			if _, err := Lookup(name); err != nil {
				t.Errorf("%s: response %q: %v", s.QualifiedName(), name, err)
			}
		}
	}
}

func TestRegistry_Lookups(t *testing.T) {
	tests := []struct {
		name    string
		class   uint8
		method  uint8
		content bool
	}{
		{"connection.start", ClassConnection, 1, false},
		{"session.attach", ClassSession, 1, false},
		{"execution.result", ClassExecution, 2, false},
		{"message.transfer", ClassMessage, 1, true},
		{"message.acquire", ClassMessage, 5, false},
		{"exchange.declare", ClassExchange, 1, false},
		{"queue.query", ClassQueue, 4, false},
	}
	for _, tt := range tests {
		m, err := Method(tt.class, tt.method)
		if err != nil {
			t.Fatalf("Method(%d, %d): %v", tt.class, tt.method, err)
		}
		if m.QualifiedName() != tt.name || m.IsContentBearing() != tt.content {
			t.Errorf("Method(%d, %d) = %s", tt.class, tt.method, m)
		}
	}

	codes := map[uint16]string{
		1:    "message.delivery-properties",
		2:    "message.fragment-properties",
		3:    "message.message-properties",
		1028: "message.acquired",
		1029: "message.message-resume-result",
		1537: "dtx.xa-result",
		1793: "exchange.exchange-query-result",
		2049: "queue.queue-query-result",
	}
	for code, name := range codes {
		s, err := Struct(code)
		if err != nil {
			t.Fatalf("Struct(%d): %v", code, err)
		}
		if s.QualifiedName() != name {
			t.Errorf("Struct(%d) = %s, want %s", code, s.QualifiedName(), name)
		}
	}

	acquire, _ := Lookup("message.acquire")
	if res, _ := ResultOf(acquire); res != Acquired {
		t.Errorf("ResultOf(message.acquire) = %v", res)
	}
	transfer, _ := Lookup("message.transfer")
	if _, err := ResultOf(transfer); err == nil {
		t.Error("message.transfer produces no result")
	}
}

func TestMethod_RoundTrip(t *testing.T) {
	declare, _ := Lookup("queue.declare")
	m := codec.New(declare).
		MustSet("queue", "orders").
		MustSet("durable", true).
		MustSet("auto-delete", true).
		MustSet("arguments", table.Table{"x-max-length": int64(1000)})

	w := buffer.NewWriter(0)
	if err := EncodeMethod(w, m); err != nil {
		t.Fatal(err)
	}
	if w.Len() != MethodSize(m) {
		t.Errorf("wrote %d bytes, MethodSize %d", w.Len(), MethodSize(m))
	}

	data := w.Bytes()
	// class, method, shortstr queue, empty alternate-exchange, one bit octet
	wantPrefix := append([]byte{ClassQueue, 1, 6}, "orders"...)
	wantPrefix = append(wantPrefix, 0, 0x0a)
	if !bytes.HasPrefix(data, wantPrefix) {
		t.Fatalf("got % x, want prefix % x", data, wantPrefix)
	}

	got, err := DecodeMethod(buffer.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeMethod_Errors(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		underrun  bool
		malformed bool
	}{
		{"empty", nil, true, false},
		{"class only", []byte{ClassQueue}, true, false},
		{"unknown method", []byte{ClassQueue, 99}, false, true},
		{"truncated body", []byte{ClassMessage, 8, 5, 'a'}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buffer.NewReader(tt.data)
			_, err := DecodeMethod(r)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.IsUnderrun(err) != tt.underrun || errors.IsMalformed(err) != tt.malformed {
				t.Errorf("unexpected classification: %v", err)
			}
			if r.Position() != 0 {
				t.Errorf("reader advanced to %d", r.Position())
			}
		})
	}
}

func TestEncodeMethod_RejectsStructs(t *testing.T) {
	if err := EncodeMethod(buffer.NewWriter(0), codec.New(DeliveryProperties)); err == nil {
		t.Error("expected error")
	}
	if err := EncodeStruct32(buffer.NewWriter(0), codec.New(ReplyTo)); err == nil {
		t.Error("untyped structure in struct32 form should fail")
	}
}

func TestStruct32_Layout(t *testing.T) {
	s := codec.New(DeliveryProperties).
		MustSet("redelivered", true).
		MustSet("priority", 4).
		MustSet("routing-key", "rk")

	w := buffer.NewWriter(0)
	if err := EncodeStruct32(w, s); err != nil {
		t.Fatal(err)
	}
	// redelivered is field 2 (bit 10), priority field 3 (bit 11),
	// routing-key field 9 (bit 1)
	want := []byte{
		0, 0, 0, 8,
		0, 1,
		0x0c, 0x02,
		4,
		2, 'r', 'k',
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got % x\nwant % x", w.Bytes(), want)
	}
	if w.Len() != Struct32Size(s) {
		t.Errorf("Struct32Size = %d", Struct32Size(s))
	}

	got, err := DecodeStruct32(buffer.NewReader(want))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(s) {
		t.Errorf("decoded %v", got)
	}
}

func TestMessageProperties_EmptyReplyTo(t *testing.T) {
	props := codec.New(MessageProperties).MustSet("message-id", "m1")
	if got := codec.Flags(props); got != 0x0a00 {
		t.Errorf("flags = %#04x, want 0x0a00", got)
	}

	data, err := codec.Marshal(props)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0a, 0x00, 0x02, 'm', '1', 0x00, 0x00}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x, want % x", data, want)
	}

	got, err := codec.Unmarshal(MessageProperties, data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(props, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeStruct32_Errors(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		underrun  bool
		malformed bool
	}{
		{"short size", []byte{0, 0}, true, false},
		{"size beyond input", []byte{0, 0, 0, 9, 0, 1}, true, false},
		{"no type code", []byte{0, 0, 0, 1, 0}, false, true},
		{"unknown type", []byte{0, 0, 0, 4, 0x7f, 0x7f, 0, 0}, false, true},
		{"body overrun", []byte{0, 0, 0, 4, 0, 1, 0x08, 0x00}, false, true},
		{"slack bytes", []byte{0, 0, 0, 5, 0, 1, 0, 0, 0}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buffer.NewReader(tt.data)
			_, err := DecodeStruct32(r)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.IsUnderrun(err) != tt.underrun || errors.IsMalformed(err) != tt.malformed {
				t.Errorf("unexpected classification: %v", err)
			}
			if r.Position() != 0 {
				t.Errorf("reader advanced to %d", r.Position())
			}
		})
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	delivery := codec.New(DeliveryProperties).
		MustSet("delivery-mode", 2).
		MustSet("ttl", 30000).
		MustSet("exchange", "amq.direct")
	props := codec.New(MessageProperties).
		MustSet("content-length", 11).
		MustSet("message-id", uuid.MustParse("9b2c6f1e-2f0a-4d53-9d7e-0c5b8a7f3e21").String()).
		MustSet("content-type", "text/plain").
		MustSet("application-headers", table.Table{"trace": uuid.MustParse("00000000-0000-4000-8000-000000000001")})
	reply, _ := props.Nested("reply-to")
	reply.MustSet("routing-key", "replies")

	w := buffer.NewWriter(0)
	if err := EncodeHeader(w, delivery, props); err != nil {
		t.Fatal(err)
	}
	if w.Len() != Struct32Size(delivery)+Struct32Size(props) {
		t.Errorf("header is %d bytes", w.Len())
	}

	got, err := DecodeHeader(buffer.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]*codec.Struct{delivery, props}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	r := buffer.NewReader(w.Bytes()[:w.Len()-1])
	if _, err := DecodeHeader(r); !errors.IsUnderrun(err) || r.Position() != 0 {
		t.Errorf("truncated header: %v at %d", err, r.Position())
	}
}

func TestLongStruct_ExecutionResult(t *testing.T) {
	acquired := codec.New(Acquired).MustSet("transfers", codec.NewSequenceSet(4, 5, 6))
	payload, err := MarshalLongStruct(acquired)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(payload, []byte{0x04, 0x04}) {
		t.Errorf("payload starts % x, want type code 1028", payload[:2])
	}

	resultDesc, _ := Lookup("execution.result")
	result := codec.New(resultDesc).MustSet("command-id", 17).MustSet("value", payload)
	data, err := codec.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}

	back, err := codec.Unmarshal(resultDesc, data)
	if err != nil {
		t.Fatal(err)
	}
	value, _ := back.Bytes("value")
	inner, err := UnmarshalLongStruct(value)
	if err != nil {
		t.Fatal(err)
	}
	if !inner.Equal(acquired) {
		t.Errorf("inner = %v", inner)
	}
}

func TestConcurrentRoundTrip(t *testing.T) {
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			w := buffer.NewWriter(0)
			for j := 0; j < 100; j++ {
				delivery := codec.New(DeliveryProperties).
					MustSet("priority", idx%10).
					MustSet("routing-key", fmt.Sprintf("rk-%d-%d", idx, j))
				props := codec.New(MessageProperties).
					MustSet("content-length", j).
					MustSet("message-id", fmt.Sprintf("m-%d", idx))

				for _, want := range []*codec.Struct{delivery, props} {
					data, err := codec.Marshal(want)
					if err != nil {
						t.Errorf("worker %d: Marshal: %v", idx, err)
						return
					}
					got, err := codec.Unmarshal(want.Descriptor(), data)
					if err != nil || !got.Equal(want) {
						t.Errorf("worker %d: round trip of %s: %v", idx, want, err)
						return
					}

					w.Reset()
					if err := EncodeStruct32(w, want); err != nil {
						t.Errorf("worker %d: EncodeStruct32: %v", idx, err)
						return
					}
					got, err = DecodeStruct32(buffer.NewReader(w.Bytes()))
					if err != nil || !got.Equal(want) {
						t.Errorf("worker %d: struct32 round trip of %s: %v", idx, want, err)
						return
					}
				}
			}
		}(i)
	}
	wg.Wait()
}
