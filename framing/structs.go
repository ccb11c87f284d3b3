package framing

import "github.com/wippyai/amqp-codec/schema"

// Class ids.
const (
	ClassConnection uint8 = 1
	ClassSession    uint8 = 2
	ClassExecution  uint8 = 3
	ClassMessage    uint8 = 4
	ClassTx         uint8 = 5
	ClassDtx        uint8 = 6
	ClassExchange   uint8 = 7
	ClassQueue      uint8 = 8
)

var (
	DeliveryProperties = schema.MustStructure(schema.Definition{
		Name:    "delivery-properties",
		Class:   "message",
		ClassID: ClassMessage,
		Type:    1,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "discard-unroutable", Domain: "bit"},
			{Name: "immediate", Domain: "bit"},
			{Name: "redelivered", Domain: "bit"},
			{Name: "priority", Domain: "octet"},
			{Name: "delivery-mode", Domain: "octet"},
			{Name: "ttl", Domain: "longlong"},
			{Name: "timestamp", Domain: "timestamp"},
			{Name: "expiration", Domain: "timestamp"},
			{Name: "exchange", Domain: "shortstr"},
			{Name: "routing-key", Domain: "shortstr"},
			{Name: "resume-id", Domain: "longstr"},
			{Name: "resume-ttl", Domain: "longlong"},
		},
	})

	FragmentProperties = schema.MustStructure(schema.Definition{
		Name:    "fragment-properties",
		Class:   "message",
		ClassID: ClassMessage,
		Type:    2,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "first", Domain: "bit"},
			{Name: "last", Domain: "bit"},
			{Name: "fragment-size", Domain: "longlong"},
		},
	})

	ReplyTo = schema.MustStructure(schema.Definition{
		Name:    "reply-to",
		Class:   "message",
		ClassID: ClassMessage,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "exchange", Domain: "shortstr"},
			{Name: "routing-key", Domain: "shortstr"},
		},
	})

	MessageProperties = schema.MustStructure(schema.Definition{
		Name:    "message-properties",
		Class:   "message",
		ClassID: ClassMessage,
		Type:    3,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "content-length", Domain: "longlong"},
			{Name: "message-id", Domain: "shortstr"},
			{Name: "correlation-id", Domain: "longstr"},
			{Name: "reply-to", Struct: ReplyTo},
			{Name: "content-type", Domain: "shortstr"},
			{Name: "content-encoding", Domain: "shortstr"},
			{Name: "user-id", Domain: "longstr"},
			{Name: "app-id", Domain: "longstr"},
			{Name: "application-headers", Domain: "table"},
		},
	})

	Acquired = schema.MustStructure(schema.Definition{
		Name:    "acquired",
		Class:   "message",
		ClassID: ClassMessage,
		Type:    4,
		Result:  true,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "transfers", Domain: "sequence-set"},
		},
	})

	MessageResumeResult = schema.MustStructure(schema.Definition{
		Name:    "message-resume-result",
		Class:   "message",
		ClassID: ClassMessage,
		Type:    5,
		Result:  true,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "offset", Domain: "longlong"},
		},
	})

	SessionHeader = schema.MustStructure(schema.Definition{
		Name:    "header",
		Class:   "session",
		ClassID: ClassSession,
		Pack:    1,
		Fields: []schema.FieldDef{
			{Name: "sync", Domain: "bit"},
		},
	})

	ExchangeQueryResult = schema.MustStructure(schema.Definition{
		Name:    "exchange-query-result",
		Class:   "exchange",
		ClassID: ClassExchange,
		Type:    1,
		Result:  true,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "type", Domain: "shortstr"},
			{Name: "durable", Domain: "bit"},
			{Name: "not-found", Domain: "bit"},
			{Name: "arguments", Domain: "table"},
		},
	})

	QueueQueryResult = schema.MustStructure(schema.Definition{
		Name:    "queue-query-result",
		Class:   "queue",
		ClassID: ClassQueue,
		Type:    1,
		Result:  true,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "queue", Domain: "shortstr"},
			{Name: "alternate-exchange", Domain: "shortstr"},
			{Name: "durable", Domain: "bit"},
			{Name: "exclusive", Domain: "bit"},
			{Name: "auto-delete", Domain: "bit"},
			{Name: "arguments", Domain: "table"},
			{Name: "message-count", Domain: "long"},
			{Name: "subscriber-count", Domain: "long"},
		},
	})

	XaResult = schema.MustStructure(schema.Definition{
		Name:    "xa-result",
		Class:   "dtx",
		ClassID: ClassDtx,
		Type:    1,
		Result:  true,
		Pack:    2,
		Fields: []schema.FieldDef{
			{Name: "status", Domain: "short"},
		},
	})
)

var structs = []*schema.Structure{
	DeliveryProperties,
	FragmentProperties,
	ReplyTo,
	MessageProperties,
	Acquired,
	MessageResumeResult,
	SessionHeader,
	ExchangeQueryResult,
	QueueQueryResult,
	XaResult,
}
