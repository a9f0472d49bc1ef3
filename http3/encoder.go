package http3

import "sort"

// Frame serialization. Streaming frames get header-only helpers (the caller
// writes the payload bytes itself); structured frames are appended whole.
// Everything the encoder produces parses back through the decoder.

// AppendDataFrameHeader appends a DATA frame header announcing payloadLen
// bytes of body.
func AppendDataFrameHeader(b []byte, payloadLen uint64) []byte {
	b = AppendVarint(b, uint64(FrameData))
	return AppendVarint(b, payloadLen)
}

// AppendHeadersFrameHeader appends a HEADERS frame header announcing
// payloadLen bytes of encoded field section.
func AppendHeadersFrameHeader(b []byte, payloadLen uint64) []byte {
	b = AppendVarint(b, uint64(FrameHeaders))
	return AppendVarint(b, payloadLen)
}

// AppendPushPromiseFrameHeader appends a PUSH_PROMISE frame header and push
// id; headerBlockLen bytes of field section must follow.
func AppendPushPromiseFrameHeader(b []byte, pushID, headerBlockLen uint64) []byte {
	b = AppendVarint(b, uint64(FramePushPromise))
	b = AppendVarint(b, uint64(VarintLen(pushID))+headerBlockLen)
	return AppendVarint(b, pushID)
}

// AppendWebTransportStreamFrameHeader appends the WEBTRANSPORT_STREAM
// signal for sessionID. Everything written after it belongs to the session.
func AppendWebTransportStreamFrameHeader(b []byte, sessionID uint64) []byte {
	b = AppendVarint(b, uint64(FrameWebTransportStream))
	return AppendVarint(b, sessionID)
}

// AppendSettingsFrame appends a complete SETTINGS frame. Identifiers are
// written in ascending order so output is deterministic.
func AppendSettingsFrame(b []byte, f SettingsFrame) []byte {
	ids := make([]uint64, 0, len(f.Values))
	for id := range f.Values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var payloadLen uint64
	for _, id := range ids {
		payloadLen += uint64(VarintLen(id) + VarintLen(f.Values[id]))
	}
	b = AppendVarint(b, uint64(FrameSettings))
	b = AppendVarint(b, payloadLen)
	for _, id := range ids {
		b = AppendVarint(b, id)
		b = AppendVarint(b, f.Values[id])
	}
	return b
}

// AppendCancelPushFrame appends a complete CANCEL_PUSH frame.
func AppendCancelPushFrame(b []byte, f CancelPushFrame) []byte {
	b = AppendVarint(b, uint64(FrameCancelPush))
	b = AppendVarint(b, uint64(VarintLen(f.PushID)))
	return AppendVarint(b, f.PushID)
}

// AppendMaxPushIDFrame appends a complete MAX_PUSH_ID frame.
func AppendMaxPushIDFrame(b []byte, f MaxPushIDFrame) []byte {
	b = AppendVarint(b, uint64(FrameMaxPushID))
	b = AppendVarint(b, uint64(VarintLen(f.PushID)))
	return AppendVarint(b, f.PushID)
}

// AppendGoAwayFrame appends a complete GOAWAY frame.
func AppendGoAwayFrame(b []byte, f GoAwayFrame) []byte {
	b = AppendVarint(b, uint64(FrameGoAway))
	b = AppendVarint(b, uint64(VarintLen(f.ID)))
	return AppendVarint(b, f.ID)
}

// AppendPriorityUpdateFrame appends a PRIORITY_UPDATE frame in the current
// encoding. The current frame type only prioritizes request streams.
func AppendPriorityUpdateFrame(b []byte, f PriorityUpdateFrame) []byte {
	b = AppendVarint(b, uint64(FramePriorityUpdate))
	b = AppendVarint(b, uint64(VarintLen(f.PrioritizedElementID))+uint64(len(f.PriorityFieldValue)))
	b = AppendVarint(b, f.PrioritizedElementID)
	return append(b, f.PriorityFieldValue...)
}

// AppendLegacyPriorityUpdateFrame appends a PRIORITY_UPDATE frame in the
// draft encoding with an explicit element-type byte.
func AppendLegacyPriorityUpdateFrame(b []byte, f PriorityUpdateFrame) []byte {
	b = AppendVarint(b, uint64(FramePriorityUpdateLegacy))
	b = AppendVarint(b, 1+uint64(VarintLen(f.PrioritizedElementID))+uint64(len(f.PriorityFieldValue)))
	b = append(b, byte(f.PrioritizedElementType))
	b = AppendVarint(b, f.PrioritizedElementID)
	return append(b, f.PriorityFieldValue...)
}

// AppendAcceptCHFrame appends a complete ACCEPT_CH frame.
func AppendAcceptCHFrame(b []byte, f AcceptCHFrame) []byte {
	var payloadLen uint64
	for _, e := range f.Entries {
		payloadLen += uint64(VarintLen(uint64(len(e.Origin)))) + uint64(len(e.Origin))
		payloadLen += uint64(VarintLen(uint64(len(e.Value)))) + uint64(len(e.Value))
	}
	b = AppendVarint(b, uint64(FrameAcceptCH))
	b = AppendVarint(b, payloadLen)
	for _, e := range f.Entries {
		b = AppendVarint(b, uint64(len(e.Origin)))
		b = append(b, e.Origin...)
		b = AppendVarint(b, uint64(len(e.Value)))
		b = append(b, e.Value...)
	}
	return b
}

// AppendGreaseFrame appends a reserved-type frame with the given payload,
// using the Nth grease type (0x1f * n + 0x21).
func AppendGreaseFrame(b []byte, n uint64, payload []byte) []byte {
	b = AppendVarint(b, 0x1f*n+0x21)
	b = AppendVarint(b, uint64(len(payload)))
	return append(b, payload...)
}
