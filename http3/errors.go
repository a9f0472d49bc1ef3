package http3

// ErrorKind classifies why the decoder stopped.
type ErrorKind int

const (
	// NoError is the zero kind of a decoder that has not failed.
	NoError ErrorKind = iota

	// FrameStructureError covers truncated or malformed fields, invalid enum
	// values and superfluous trailing bytes inside a frame payload.
	FrameStructureError

	// FrameTooLarge means a frame declared a payload length beyond the
	// configured maximum. Raised before any payload byte is read.
	FrameTooLarge

	// DuplicateSettingIdentifier means a SETTINGS payload repeated an
	// identifier.
	DuplicateSettingIdentifier

	// ForeignProtocolFrame means an HTTP/2 control frame type arrived on an
	// HTTP/3 stream.
	ForeignProtocolFrame

	// ProtocolFeatureDisabled means a push frame arrived while push is
	// rejected by configuration.
	ProtocolFeatureDisabled

	// UsageFault is a caller bug, not a wire error: the decoder was fed
	// again after the stream had been delegated to a WebTransport session.
	UsageFault
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case FrameStructureError:
		return "frame structure error"
	case FrameTooLarge:
		return "frame too large"
	case DuplicateSettingIdentifier:
		return "duplicate setting identifier"
	case ForeignProtocolFrame:
		return "foreign protocol frame"
	case ProtocolFeatureDisabled:
		return "protocol feature disabled"
	case UsageFault:
		return "usage fault"
	default:
		return "unknown error kind"
	}
}

// DecodeError is the sticky error a decoder exposes after it stops.
type DecodeError struct {
	Kind   ErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	return e.Detail
}
