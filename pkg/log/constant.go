package log

const (
	ModeProduction = "production"
	ModeDebug      = "debug"

	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// TraceIDKey is the context key carrying a request or message trace ID.
type TraceIDKey struct{}
