package http3

import "fmt"

/*
HTTP/3 framing as defined in RFC 9114.

Every frame starts with two varints:
- Type: identifies the frame (see FrameType)
- Length: number of payload bytes that follow

There are no flags and no stream identifier; QUIC streams carry that
information. Payload layout depends on the type: DATA and HEADERS carry
opaque bytes, the control frames carry varint fields.
*/

// Settings identifiers.
const (
	// https://www.rfc-editor.org/rfc/rfc9204.html#section-5
	SettingQPACKMaxTableCapacity uint64 = 0x01
	SettingQPACKBlockedStreams   uint64 = 0x07

	// https://www.rfc-editor.org/rfc/rfc9114.html#section-7.2.4.1
	SettingMaxFieldSectionSize uint64 = 0x06

	// https://www.rfc-editor.org/rfc/rfc9297.html
	SettingH3Datagram uint64 = 0x33

	// https://www.rfc-editor.org/rfc/rfc9220.html
	SettingEnableConnectProtocol uint64 = 0x08
)

// Settings identifiers reserved by HTTP/2; using them in HTTP/3 is an error
// on the sender's side, but the decoder delivers them like any other id.
const (
	settingHTTP2EnablePush           uint64 = 0x02
	settingHTTP2MaxConcurrentStreams uint64 = 0x03
	settingHTTP2InitialWindowSize    uint64 = 0x04
	settingHTTP2MaxFrameSize         uint64 = 0x05
)

// SettingName returns the registered name of a settings identifier, or its
// hex form if it has none.
func SettingName(id uint64) string {
	switch id {
	case SettingQPACKMaxTableCapacity:
		return "SETTINGS_QPACK_MAX_TABLE_CAPACITY"
	case SettingQPACKBlockedStreams:
		return "SETTINGS_QPACK_BLOCKED_STREAMS"
	case SettingMaxFieldSectionSize:
		return "SETTINGS_MAX_FIELD_SECTION_SIZE"
	case SettingH3Datagram:
		return "SETTINGS_H3_DATAGRAM"
	case SettingEnableConnectProtocol:
		return "SETTINGS_ENABLE_CONNECT_PROTOCOL"
	}
	return fmt.Sprintf("%#x", id)
}
