package http3

import (
	"errors"
	"fmt"
)

// Config carries the decoder's deployment knobs. It is read at construction
// and never mutated afterwards.
type Config struct {
	// MaxFrameSize is the largest declared payload length the decoder
	// accepts. Required; a frame above it fails with FrameTooLarge before
	// any payload byte is read.
	MaxFrameSize uint64

	// RejectPush makes CANCEL_PUSH and PUSH_PROMISE frames fatal on sight.
	// MAX_PUSH_ID is still parsed.
	RejectPush bool

	// AcceptLegacyPriorityUpdate parses frame type 0x0f as the draft
	// PRIORITY_UPDATE encoding with an explicit element-type byte. When
	// false that type takes the unknown-frame path.
	AcceptLegacyPriorityUpdate bool

	// AllowWebTransportStream recognizes the WEBTRANSPORT_STREAM signal and
	// delegates the remainder of the stream to the session. When false the
	// type is treated as an ordinary unknown frame.
	AllowWebTransportStream bool
}

type decoderState int

const (
	stateReadType decoderState = iota
	stateReadLength
	stateReadPayload
	stateFinishFrame
	stateError
	stateDelegated
)

// Decoder turns an arbitrarily fragmented byte stream into frame
// notifications on a Visitor. One decoder belongs to one stream direction
// and must not be used from multiple goroutines.
type Decoder struct {
	visitor Visitor
	cfg     Config

	state      decoderState
	frameType  FrameType
	typeLen    uint64 // bytes the type varint occupied
	headerLen  uint64 // type + length varints
	payloadLen uint64 // declared payload length
	remaining  uint64 // payload bytes not yet consumed

	varintBuf  []byte // carry-over for a varint split across Feed calls
	payloadBuf []byte // accumulates a structured frame's payload

	pushIDDone bool

	err *DecodeError
}

// NewDecoder returns a decoder delivering to visitor. cfg.MaxFrameSize must
// be set.
func NewDecoder(visitor Visitor, cfg Config) (*Decoder, error) {
	if visitor == nil {
		return nil, errors.New("http3: decoder requires a visitor")
	}
	if cfg.MaxFrameSize == 0 {
		return nil, errors.New("http3: Config.MaxFrameSize is required")
	}
	return &Decoder{visitor: visitor, cfg: cfg}, nil
}

// Feed consumes bytes from in, in order, and returns how many were consumed.
// Fewer than len(in) bytes are consumed when the input ends mid-field, when
// a visitor callback pauses decoding, or when a fatal error is raised. The
// notification sequence and total consumed count are identical for any
// chunking of the same byte stream. After an error Feed consumes nothing.
func (d *Decoder) Feed(in []byte) int {
	switch d.state {
	case stateDelegated:
		d.raise(UsageFault, "Decoder fed after the stream was delegated.")
		return 0
	case stateError:
		return 0
	}

	r := in
	cont := true
	for cont && d.err == nil && (len(r) > 0 || d.state == stateFinishFrame) {
		var n int
		switch d.state {
		case stateReadType:
			n = d.readType(r)
		case stateReadLength:
			n, cont = d.readLength(r)
		case stateReadPayload:
			n, cont = d.readPayload(r)
		case stateFinishFrame:
			cont = d.finishFrame()
		case stateDelegated:
			cont = false
		}
		r = r[n:]
	}
	return len(in) - len(r)
}

// Err returns the sticky *DecodeError, or nil while decoding is healthy.
func (d *Decoder) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// ErrorKind returns the kind of the sticky error, or NoError.
func (d *Decoder) ErrorKind() ErrorKind {
	if d.err == nil {
		return NoError
	}
	return d.err.Kind
}

// ErrorDetail returns the human-readable detail of the sticky error.
func (d *Decoder) ErrorDetail() string {
	if d.err == nil {
		return ""
	}
	return d.err.Detail
}

// CurrentFrameType returns the type of the frame being (or last) decoded.
func (d *Decoder) CurrentFrameType() FrameType {
	return d.frameType
}

func (d *Decoder) raise(kind ErrorKind, detail string) {
	d.err = &DecodeError{Kind: kind, Detail: detail}
	d.state = stateError
	d.visitor.OnError(d)
}

// bufferVarint reads a varint that may arrive split across Feed calls.
// It returns the value, the bytes consumed from in, the total encoded
// length, and whether the varint is complete.
func (d *Decoder) bufferVarint(in []byte) (v uint64, consumed, encLen int, ok bool) {
	if len(d.varintBuf) == 0 {
		if len(in) == 0 {
			return 0, 0, 0, false
		}
		need := varintBytesNeeded(in[0])
		if len(in) >= need {
			v, _ = ParseVarint(in[:need])
			return v, need, need, true
		}
		d.varintBuf = append(d.varintBuf, in...)
		return 0, len(in), 0, false
	}
	need := varintBytesNeeded(d.varintBuf[0])
	take := need - len(d.varintBuf)
	if take > len(in) {
		take = len(in)
	}
	d.varintBuf = append(d.varintBuf, in[:take]...)
	if len(d.varintBuf) < need {
		return 0, take, 0, false
	}
	v, _ = ParseVarint(d.varintBuf)
	d.varintBuf = d.varintBuf[:0]
	return v, take, need, true
}

func (d *Decoder) readType(in []byte) int {
	v, n, encLen, ok := d.bufferVarint(in)
	if !ok {
		return n
	}
	d.frameType = FrameType(v)
	d.typeLen = uint64(encLen)

	if d.frameType.isHTTP2Only() {
		d.raise(ForeignProtocolFrame,
			fmt.Sprintf("HTTP/2 frame received in a HTTP/3 connection: %d", v))
		return n
	}
	if d.cfg.RejectPush {
		switch d.frameType {
		case FrameCancelPush:
			d.raise(ProtocolFeatureDisabled, "CANCEL_PUSH frame received.")
			return n
		case FramePushPromise:
			d.raise(ProtocolFeatureDisabled, "PUSH_PROMISE frame received.")
			return n
		}
	}
	d.state = stateReadLength
	return n
}

func (d *Decoder) readLength(in []byte) (int, bool) {
	v, n, encLen, ok := d.bufferVarint(in)
	if !ok {
		return n, true
	}
	d.headerLen = d.typeLen + uint64(encLen)

	if d.cfg.AllowWebTransportStream && d.frameType == FrameWebTransportStream {
		// The varint in the length position is the session id; there is no
		// frame after this, the rest of the stream belongs to the session.
		d.state = stateDelegated
		d.visitor.OnWebTransportStreamFrameType(d.headerLen, v)
		return n, false
	}

	if v > d.cfg.MaxFrameSize {
		d.raise(FrameTooLarge, "Frame is too large.")
		return n, false
	}
	if d.frameType == FramePushPromise && v == 0 {
		d.raise(FrameStructureError, "PUSH_PROMISE frame with empty payload.")
		return n, false
	}

	d.payloadLen = v
	d.remaining = v
	d.pushIDDone = false
	cont := d.fireStart()
	if d.remaining == 0 {
		d.state = stateFinishFrame
	} else {
		d.state = stateReadPayload
	}
	return n, cont
}

// isBuffered reports whether the current frame's payload is accumulated in
// full before parsing, as opposed to streamed through.
func (d *Decoder) isBuffered() bool {
	switch d.frameType {
	case FrameCancelPush, FrameSettings, FrameGoAway, FrameMaxPushID,
		FramePriorityUpdate, FrameAcceptCH:
		return true
	case FramePriorityUpdateLegacy:
		return d.cfg.AcceptLegacyPriorityUpdate
	}
	return false
}

func (d *Decoder) fireStart() bool {
	switch d.frameType {
	case FrameData:
		return d.visitor.OnDataFrameStart(d.headerLen, d.payloadLen)
	case FrameHeaders:
		return d.visitor.OnHeadersFrameStart(d.headerLen, d.payloadLen)
	case FrameCancelPush:
		return d.visitor.OnCancelPushFrameStart(d.headerLen)
	case FrameSettings:
		return d.visitor.OnSettingsFrameStart(d.headerLen)
	case FramePushPromise:
		return d.visitor.OnPushPromiseFrameStart(d.headerLen)
	case FrameGoAway:
		return d.visitor.OnGoAwayFrameStart(d.headerLen)
	case FrameMaxPushID:
		return d.visitor.OnMaxPushIDFrameStart(d.headerLen)
	case FramePriorityUpdate:
		return d.visitor.OnPriorityUpdateFrameStart(d.headerLen)
	case FramePriorityUpdateLegacy:
		if d.cfg.AcceptLegacyPriorityUpdate {
			return d.visitor.OnPriorityUpdateFrameStart(d.headerLen)
		}
	case FrameAcceptCH:
		return d.visitor.OnAcceptCHFrameStart(d.headerLen)
	}
	return d.visitor.OnUnknownFrameStart(d.frameType, d.headerLen, d.payloadLen)
}

func (d *Decoder) readPayload(in []byte) (int, bool) {
	if d.isBuffered() {
		take := min(uint64(len(in)), d.remaining)
		d.payloadBuf = append(d.payloadBuf, in[:take]...)
		d.remaining -= take
		if d.remaining == 0 {
			d.state = stateFinishFrame
		}
		return int(take), true
	}

	if d.frameType == FramePushPromise && !d.pushIDDone {
		lim := int(min(uint64(len(in)), d.remaining))
		id, n, encLen, ok := d.bufferVarint(in[:lim])
		d.remaining -= uint64(n)
		if !ok {
			if d.remaining == 0 {
				d.raise(FrameStructureError, "Unable to read PUSH_PROMISE push_id.")
			}
			return n, true
		}
		d.pushIDDone = true
		cont := d.visitor.OnPushPromiseFramePushID(id, uint64(encLen), d.remaining)
		if d.remaining == 0 {
			d.state = stateFinishFrame
		}
		return n, cont
	}

	// Streaming pass-through: deliver whatever belongs to this frame, no
	// re-buffering.
	take := min(uint64(len(in)), d.remaining)
	d.remaining -= take
	if d.remaining == 0 {
		d.state = stateFinishFrame
	}
	cont := true
	if take > 0 {
		cont = d.firePayload(in[:take])
	}
	return int(take), cont
}

func (d *Decoder) firePayload(chunk []byte) bool {
	switch d.frameType {
	case FrameData:
		return d.visitor.OnDataFramePayload(chunk)
	case FrameHeaders:
		return d.visitor.OnHeadersFramePayload(chunk)
	case FramePushPromise:
		return d.visitor.OnPushPromiseFramePayload(chunk)
	}
	return d.visitor.OnUnknownFramePayload(chunk)
}

// finishFrame runs once the whole declared payload has been consumed. For
// streaming frames it fires the End notification; for structured frames it
// parses the buffered payload and fires the record notification.
func (d *Decoder) finishFrame() bool {
	var cont bool
	switch d.frameType {
	case FrameData:
		cont = d.visitor.OnDataFrameEnd()
	case FrameHeaders:
		cont = d.visitor.OnHeadersFrameEnd()
	case FramePushPromise:
		cont = d.visitor.OnPushPromiseFrameEnd()
	case FrameCancelPush:
		id, ok := d.finishSingleVarint("CANCEL_PUSH", "push_id")
		if !ok {
			return false
		}
		cont = d.visitor.OnCancelPushFrame(CancelPushFrame{PushID: id})
	case FrameMaxPushID:
		id, ok := d.finishSingleVarint("MAX_PUSH_ID", "push_id")
		if !ok {
			return false
		}
		cont = d.visitor.OnMaxPushIDFrame(MaxPushIDFrame{PushID: id})
	case FrameGoAway:
		id, ok := d.finishSingleVarint("GOAWAY", "ID")
		if !ok {
			return false
		}
		cont = d.visitor.OnGoAwayFrame(GoAwayFrame{ID: id})
	case FrameSettings:
		f, derr := parseSettingsPayload(d.payloadBuf)
		if derr != nil {
			d.raise(derr.Kind, derr.Detail)
			return false
		}
		cont = d.visitor.OnSettingsFrame(f)
	case FramePriorityUpdate:
		cont = d.finishPriorityUpdate(false)
		if d.err != nil {
			return false
		}
	case FramePriorityUpdateLegacy:
		if d.cfg.AcceptLegacyPriorityUpdate {
			cont = d.finishPriorityUpdate(true)
			if d.err != nil {
				return false
			}
		} else {
			cont = d.visitor.OnUnknownFrameEnd()
		}
	case FrameAcceptCH:
		f, derr := parseAcceptCHPayload(d.payloadBuf)
		if derr != nil {
			d.raise(derr.Kind, derr.Detail)
			return false
		}
		cont = d.visitor.OnAcceptCHFrame(f)
	default:
		cont = d.visitor.OnUnknownFrameEnd()
	}

	d.payloadBuf = d.payloadBuf[:0]
	d.payloadLen = 0
	d.remaining = 0
	d.headerLen = 0
	d.typeLen = 0
	d.pushIDDone = false
	d.state = stateReadType
	return cont
}

func (d *Decoder) finishSingleVarint(frame, field string) (uint64, bool) {
	v, n := ParseVarint(d.payloadBuf)
	if n == 0 {
		d.raise(FrameStructureError, "Unable to read "+frame+" "+field+".")
		return 0, false
	}
	if n != len(d.payloadBuf) {
		d.raise(FrameStructureError, "Superfluous data in "+frame+" frame.")
		return 0, false
	}
	return v, true
}

func (d *Decoder) finishPriorityUpdate(legacy bool) bool {
	f, derr := parsePriorityUpdatePayload(d.payloadBuf, legacy)
	if derr != nil {
		d.raise(derr.Kind, derr.Detail)
		return false
	}
	return d.visitor.OnPriorityUpdateFrame(f)
}

// DecodeSettings parses a standalone buffer holding exactly one complete
// SETTINGS frame, header included. It needs no decoder instance and no
// visitor.
func DecodeSettings(data []byte) (*SettingsFrame, error) {
	t, n := ParseVarint(data)
	if n == 0 {
		return nil, errors.New("http3: truncated frame type")
	}
	if FrameType(t) != FrameSettings {
		return nil, fmt.Errorf("http3: not a SETTINGS frame: type %#x", t)
	}
	data = data[n:]
	length, n := ParseVarint(data)
	if n == 0 {
		return nil, errors.New("http3: truncated frame length")
	}
	data = data[n:]
	if uint64(len(data)) != length {
		return nil, fmt.Errorf("http3: SETTINGS length %d does not match %d payload bytes", length, len(data))
	}
	f, derr := parseSettingsPayload(data)
	if derr != nil {
		return nil, derr
	}
	return &f, nil
}
