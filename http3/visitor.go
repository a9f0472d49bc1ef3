package http3

// Visitor receives the decoder's notifications. Every callback except
// OnError returns a continuation signal: true lets the decoder keep
// consuming bytes within the current Feed call, false makes it stop right
// after the notification, keeping its position for the next Feed call.
//
// For every frame a Start notification fires as soon as type and length are
// known, carrying the byte length of the two header varints. Streaming
// frames (DATA, HEADERS, unknown types and the header block of PUSH_PROMISE)
// then get their payload forwarded in whatever chunks arrive, followed by an
// End notification. Structured frames get a single notification with the
// fully parsed record instead.
//
// Records passed to callbacks are owned by the decoder and only valid until
// the callback returns.
type Visitor interface {
	// OnError fires exactly once, synchronously, when the decoder enters its
	// terminal error state. Query the decoder for the kind and detail.
	OnError(d *Decoder)

	OnDataFrameStart(headerLen, payloadLen uint64) bool
	OnDataFramePayload(payload []byte) bool
	OnDataFrameEnd() bool

	OnHeadersFrameStart(headerLen, payloadLen uint64) bool
	OnHeadersFramePayload(payload []byte) bool
	OnHeadersFrameEnd() bool

	OnCancelPushFrameStart(headerLen uint64) bool
	OnCancelPushFrame(f CancelPushFrame) bool

	OnSettingsFrameStart(headerLen uint64) bool
	OnSettingsFrame(f SettingsFrame) bool

	OnPushPromiseFrameStart(headerLen uint64) bool
	// OnPushPromiseFramePushID fires once the push id has been parsed;
	// headerBlockLen is the number of payload bytes that follow it.
	OnPushPromiseFramePushID(pushID, pushIDLen, headerBlockLen uint64) bool
	OnPushPromiseFramePayload(payload []byte) bool
	OnPushPromiseFrameEnd() bool

	OnGoAwayFrameStart(headerLen uint64) bool
	OnGoAwayFrame(f GoAwayFrame) bool

	OnMaxPushIDFrameStart(headerLen uint64) bool
	OnMaxPushIDFrame(f MaxPushIDFrame) bool

	OnPriorityUpdateFrameStart(headerLen uint64) bool
	OnPriorityUpdateFrame(f PriorityUpdateFrame) bool

	OnAcceptCHFrameStart(headerLen uint64) bool
	OnAcceptCHFrame(f AcceptCHFrame) bool

	// OnWebTransportStreamFrameType fires when an enabled WEBTRANSPORT_STREAM
	// signal is read. The rest of the stream belongs to the session; the
	// decoder is done with it, so the return value carries no weight.
	OnWebTransportStreamFrameType(headerLen, sessionID uint64) bool

	OnUnknownFrameStart(frameType FrameType, headerLen, payloadLen uint64) bool
	OnUnknownFramePayload(payload []byte) bool
	OnUnknownFrameEnd() bool
}
