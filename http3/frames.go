package http3

// Parsed frame records. Each is built inside the decoder while a structured
// frame's payload is buffered and handed to the visitor once complete. The
// record is only valid for the duration of the callback; copy what you keep.

// SettingsFrame is the payload of a SETTINGS frame: a mapping from setting
// identifier to value. Identifiers are unique; a repeated identifier is a
// protocol violation caught by the decoder.
type SettingsFrame struct {
	Values map[uint64]uint64
}

// CancelPushFrame requests that a promised push be abandoned.
type CancelPushFrame struct {
	PushID uint64
}

// MaxPushIDFrame raises the limit on push ids the server may use.
type MaxPushIDFrame struct {
	PushID uint64
}

// GoAwayFrame carries the identifier of the last request or push that will
// be processed on this connection.
type GoAwayFrame struct {
	ID uint64
}

// PriorityElementType says what kind of stream a PRIORITY_UPDATE frame
// prioritizes. The legacy wire encoding carries it as an explicit byte; the
// current encoding implies PriorityElementRequestStream.
type PriorityElementType uint8

const (
	PriorityElementRequestStream PriorityElementType = 0x00
	PriorityElementPushStream    PriorityElementType = 0x80
)

// PriorityUpdateFrame reprioritizes a request or push stream. The field
// value is an opaque byte sequence (a Priority header field value) and may
// be empty.
type PriorityUpdateFrame struct {
	PrioritizedElementType PriorityElementType
	PrioritizedElementID   uint64
	PriorityFieldValue     []byte
}

// AcceptCHEntry is one origin/value pair of an ACCEPT_CH frame.
type AcceptCHEntry struct {
	Origin string
	Value  string
}

// AcceptCHFrame lists the Accept-CH advertisements of the server, one entry
// per origin, in wire order.
type AcceptCHFrame struct {
	Entries []AcceptCHEntry
}
