package http3

import "fmt"

// A FrameType identifies an HTTP/3 frame.
// https://www.rfc-editor.org/rfc/rfc9114.html#name-frame-definitions
type FrameType uint64

const (
	FrameData        FrameType = 0x00
	FrameHeaders     FrameType = 0x01
	FrameCancelPush  FrameType = 0x03
	FrameSettings    FrameType = 0x04
	FramePushPromise FrameType = 0x05
	FrameGoAway      FrameType = 0x07
	FrameMaxPushID   FrameType = 0x0d

	// FramePriorityUpdateLegacy is the draft encoding of PRIORITY_UPDATE that
	// carried an explicit prioritized-element-type byte. The RFC 9218 frame
	// type below implies a request stream instead.
	FramePriorityUpdateLegacy FrameType = 0x0f
	FramePriorityUpdate       FrameType = 0x800f0700

	// https://www.rfc-editor.org/rfc/rfc9412.html
	FrameAcceptCH FrameType = 0x89

	// FrameWebTransportStream hands the rest of the stream over to a
	// WebTransport session. It has a session id where other frames have a
	// payload length, and no frame boundary after it.
	FrameWebTransportStream FrameType = 0x41
)

// HTTP/2 frame types that have no HTTP/3 equivalent. Receiving one of these
// means the peer is speaking the wrong protocol on this stream.
const (
	http2FramePriority     FrameType = 0x02
	http2FramePing         FrameType = 0x06
	http2FrameWindowUpdate FrameType = 0x08
	http2FrameContinuation FrameType = 0x09
)

// String returns the registered name of t if it has one.
func (t FrameType) String() string {
	switch t {
	case FrameData:
		return "DATA"
	case FrameHeaders:
		return "HEADERS"
	case FrameCancelPush:
		return "CANCEL_PUSH"
	case FrameSettings:
		return "SETTINGS"
	case FramePushPromise:
		return "PUSH_PROMISE"
	case FrameGoAway:
		return "GOAWAY"
	case FrameMaxPushID:
		return "MAX_PUSH_ID"
	case FramePriorityUpdateLegacy, FramePriorityUpdate:
		return "PRIORITY_UPDATE"
	case FrameAcceptCH:
		return "ACCEPT_CH"
	case FrameWebTransportStream:
		return "WEBTRANSPORT_STREAM"
	default:
		return fmt.Sprintf("%#x", uint64(t))
	}
}

// IsReserved reports whether t is one of the reserved "grease" types of the
// form 0x1f * N + 0x21, sent to exercise peers' tolerance of unknown frames.
// Reserved frames carry no semantics and take the unknown-frame path.
func (t FrameType) IsReserved() bool {
	return t >= 0x21 && (uint64(t)-0x21)%0x1f == 0
}

// isHTTP2Only reports whether t is a control frame of HTTP/2 with no meaning
// in HTTP/3.
func (t FrameType) isHTTP2Only() bool {
	switch t {
	case http2FramePriority, http2FramePing, http2FrameWindowUpdate, http2FrameContinuation:
		return true
	}
	return false
}
