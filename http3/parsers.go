package http3

// Payload parsers for structured frames. Each one gets the complete buffered
// payload and must consume it exactly; truncation and trailing bytes are
// protocol violations with fixed detail strings.

func parseSettingsPayload(b []byte) (SettingsFrame, *DecodeError) {
	f := SettingsFrame{Values: make(map[uint64]uint64)}
	for len(b) > 0 {
		id, n := ParseVarint(b)
		if n == 0 {
			return f, &DecodeError{FrameStructureError, "Unable to read setting identifier."}
		}
		b = b[n:]
		value, n := ParseVarint(b)
		if n == 0 {
			return f, &DecodeError{FrameStructureError, "Unable to read setting value."}
		}
		b = b[n:]
		if _, dup := f.Values[id]; dup {
			return f, &DecodeError{DuplicateSettingIdentifier, "Duplicate setting identifier."}
		}
		f.Values[id] = value
	}
	return f, nil
}

func parsePriorityUpdatePayload(b []byte, legacy bool) (PriorityUpdateFrame, *DecodeError) {
	var f PriorityUpdateFrame
	if legacy {
		if len(b) == 0 {
			return f, &DecodeError{FrameStructureError, "Unable to read prioritized element type."}
		}
		switch PriorityElementType(b[0]) {
		case PriorityElementRequestStream, PriorityElementPushStream:
			f.PrioritizedElementType = PriorityElementType(b[0])
		default:
			return f, &DecodeError{FrameStructureError, "Invalid prioritized element type."}
		}
		b = b[1:]
	} else {
		// The current wire encoding has no element-type byte; the frame type
		// itself implies a request stream.
		f.PrioritizedElementType = PriorityElementRequestStream
	}
	id, n := ParseVarint(b)
	if n == 0 {
		return f, &DecodeError{FrameStructureError, "Unable to read prioritized element id."}
	}
	f.PrioritizedElementID = id
	b = b[n:]
	if len(b) > 0 {
		f.PriorityFieldValue = append([]byte(nil), b...)
	}
	return f, nil
}

func parseAcceptCHPayload(b []byte) (AcceptCHFrame, *DecodeError) {
	var f AcceptCHFrame
	for len(b) > 0 {
		origin, rest, ok := readLengthPrefixed(b)
		if !ok {
			return f, &DecodeError{FrameStructureError, "Unable to read ACCEPT_CH origin."}
		}
		value, rest, ok := readLengthPrefixed(rest)
		if !ok {
			return f, &DecodeError{FrameStructureError, "Unable to read ACCEPT_CH value."}
		}
		f.Entries = append(f.Entries, AcceptCHEntry{Origin: string(origin), Value: string(value)})
		b = rest
	}
	return f, nil
}

// readLengthPrefixed reads a varint length followed by that many bytes.
func readLengthPrefixed(b []byte) (field, rest []byte, ok bool) {
	l, n := ParseVarint(b)
	if n == 0 || uint64(len(b)-n) < l {
		return nil, nil, false
	}
	return b[n : n+int(l)], b[n+int(l):], true
}
