package framing

import "github.com/wippyai/amqp-codec/schema"

func fd(name, domain string) schema.FieldDef {
	return schema.FieldDef{Name: name, Domain: domain}
}

var methodDefs = []schema.Definition{
	// connection
	{
		Class: "connection", ClassID: ClassConnection, Name: "start", MethodID: 1,
		Responses: []string{"connection.start-ok"},
		Fields:    []schema.FieldDef{fd("server-properties", "table"), fd("mechanisms", "longstr"), fd("locales", "longstr")},
	},
	{
		Class: "connection", ClassID: ClassConnection, Name: "start-ok", MethodID: 2,
		Fields: []schema.FieldDef{fd("client-properties", "table"), fd("mechanism", "shortstr"), fd("response", "longstr"), fd("locale", "shortstr")},
	},
	{
		Class: "connection", ClassID: ClassConnection, Name: "tune", MethodID: 5,
		Responses: []string{"connection.tune-ok"},
		Fields:    []schema.FieldDef{fd("channel-max", "short"), fd("max-frame-size", "short"), fd("heartbeat-min", "short"), fd("heartbeat-max", "short")},
	},
	{
		Class: "connection", ClassID: ClassConnection, Name: "tune-ok", MethodID: 6,
		Fields: []schema.FieldDef{fd("channel-max", "short"), fd("max-frame-size", "short"), fd("heartbeat", "short")},
	},
	{
		Class: "connection", ClassID: ClassConnection, Name: "open", MethodID: 7,
		Responses: []string{"connection.open-ok"},
		Fields:    []schema.FieldDef{fd("virtual-host", "shortstr"), fd("capabilities", "longstr"), fd("insist", "bit")},
	},
	{
		Class: "connection", ClassID: ClassConnection, Name: "open-ok", MethodID: 8,
		Fields: []schema.FieldDef{fd("known-hosts", "longstr")},
	},
	{
		Class: "connection", ClassID: ClassConnection, Name: "close", MethodID: 11,
		Responses: []string{"connection.close-ok"},
		Fields:    []schema.FieldDef{fd("reply-code", "short"), fd("reply-text", "shortstr")},
	},
	{Class: "connection", ClassID: ClassConnection, Name: "close-ok", MethodID: 12},

	// session
	{
		Class: "session", ClassID: ClassSession, Name: "attach", MethodID: 1,
		Responses: []string{"session.attached", "session.detached"},
		Fields:    []schema.FieldDef{fd("name", "longstr"), fd("force", "bit")},
	},
	{
		Class: "session", ClassID: ClassSession, Name: "attached", MethodID: 2,
		Fields: []schema.FieldDef{fd("name", "longstr")},
	},
	{
		Class: "session", ClassID: ClassSession, Name: "detach", MethodID: 3,
		Responses: []string{"session.detached"},
		Fields:    []schema.FieldDef{fd("name", "longstr")},
	},
	{
		Class: "session", ClassID: ClassSession, Name: "detached", MethodID: 4,
		Fields: []schema.FieldDef{fd("name", "longstr"), fd("code", "octet")},
	},

	// execution
	{Class: "execution", ClassID: ClassExecution, Name: "sync", MethodID: 1},
	{
		Class: "execution", ClassID: ClassExecution, Name: "result", MethodID: 2,
		Fields: []schema.FieldDef{fd("command-id", "long"), fd("value", "long-struct")},
	},
	{
		Class: "execution", ClassID: ClassExecution, Name: "exception", MethodID: 3,
		Fields: []schema.FieldDef{
			fd("error-code", "short"), fd("command-id", "long"), fd("class-code", "octet"),
			fd("command-code", "octet"), fd("field-index", "octet"), fd("description", "longstr"),
			fd("error-info", "table"),
		},
	},

	// message
	{
		Class: "message", ClassID: ClassMessage, Name: "transfer", MethodID: 1,
		ContentBearing: true,
		Fields:         []schema.FieldDef{fd("destination", "shortstr"), fd("accept-mode", "octet"), fd("acquire-mode", "octet")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "accept", MethodID: 2,
		Fields: []schema.FieldDef{fd("transfers", "sequence-set")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "reject", MethodID: 3,
		Fields: []schema.FieldDef{fd("transfers", "sequence-set"), fd("code", "short"), fd("text", "shortstr")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "release", MethodID: 4,
		Fields: []schema.FieldDef{fd("transfers", "sequence-set"), fd("set-redelivered", "bit")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "acquire", MethodID: 5,
		ResultType: "message.acquired",
		Fields:     []schema.FieldDef{fd("transfers", "sequence-set")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "resume", MethodID: 6,
		ResultType: "message.message-resume-result",
		Fields:     []schema.FieldDef{fd("destination", "shortstr"), fd("resume-id", "longstr")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "subscribe", MethodID: 7,
		Fields: []schema.FieldDef{
			fd("queue", "shortstr"), fd("destination", "shortstr"), fd("accept-mode", "octet"),
			fd("acquire-mode", "octet"), fd("exclusive", "bit"), fd("resume-id", "longstr"),
			fd("resume-ttl", "longlong"), fd("arguments", "table"),
		},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "cancel", MethodID: 8,
		Fields: []schema.FieldDef{fd("destination", "shortstr")},
	},
	{
		Class: "message", ClassID: ClassMessage, Name: "flow", MethodID: 11,
		Fields: []schema.FieldDef{fd("destination", "shortstr"), fd("unit", "octet"), fd("value", "long")},
	},

	// exchange
	{
		Class: "exchange", ClassID: ClassExchange, Name: "declare", MethodID: 1,
		Fields: []schema.FieldDef{
			fd("exchange", "shortstr"), fd("type", "shortstr"), fd("alternate-exchange", "shortstr"),
			fd("passive", "bit"), fd("durable", "bit"), fd("auto-delete", "bit"), fd("arguments", "table"),
		},
	},
	{
		Class: "exchange", ClassID: ClassExchange, Name: "delete", MethodID: 2,
		Fields: []schema.FieldDef{fd("exchange", "shortstr"), fd("if-unused", "bit")},
	},
	{
		Class: "exchange", ClassID: ClassExchange, Name: "query", MethodID: 3,
		ResultType: "exchange.exchange-query-result",
		Fields:     []schema.FieldDef{fd("name", "shortstr")},
	},
	{
		Class: "exchange", ClassID: ClassExchange, Name: "bind", MethodID: 4,
		Fields: []schema.FieldDef{fd("queue", "shortstr"), fd("exchange", "shortstr"), fd("binding-key", "shortstr"), fd("arguments", "table")},
	},

	// queue
	{
		Class: "queue", ClassID: ClassQueue, Name: "declare", MethodID: 1,
		Fields: []schema.FieldDef{
			fd("queue", "shortstr"), fd("alternate-exchange", "shortstr"), fd("passive", "bit"),
			fd("durable", "bit"), fd("exclusive", "bit"), fd("auto-delete", "bit"), fd("arguments", "table"),
		},
	},
	{
		Class: "queue", ClassID: ClassQueue, Name: "delete", MethodID: 2,
		Fields: []schema.FieldDef{fd("queue", "shortstr"), fd("if-unused", "bit"), fd("if-empty", "bit")},
	},
	{
		Class: "queue", ClassID: ClassQueue, Name: "purge", MethodID: 3,
		Fields: []schema.FieldDef{fd("queue", "shortstr")},
	},
	{
		Class: "queue", ClassID: ClassQueue, Name: "query", MethodID: 4,
		ResultType: "queue.queue-query-result",
		Fields:     []schema.FieldDef{fd("queue", "shortstr")},
	},
}

func methods() []*schema.Structure {
	out := make([]*schema.Structure, len(methodDefs))
	for i, def := range methodDefs {
		def.Method = true
		out[i] = schema.MustStructure(def)
	}
	return out
}
