package main

import (
	"encoding/hex"

	"github.com/rs/zerolog"

	"osmium/http3"
)

// dumpVisitor logs every frame notification. It never pauses the decoder;
// the delegated flag is the only state a caller needs to look at afterwards.
type dumpVisitor struct {
	log         zerolog.Logger
	hexPayloads bool

	frames       int
	payloadBytes uint64
	perType      map[string]int

	delegated        bool
	delegatedSession uint64
}

func newDumpVisitor(log zerolog.Logger, hexPayloads bool) *dumpVisitor {
	return &dumpVisitor{log: log, hexPayloads: hexPayloads, perType: make(map[string]int)}
}

func (v *dumpVisitor) frame(name string, headerLen uint64) *zerolog.Event {
	v.frames++
	v.perType[name]++
	return v.log.Info().Str("frame", name).Uint64("header_len", headerLen)
}

func (v *dumpVisitor) payload(name string, p []byte) bool {
	v.payloadBytes += uint64(len(p))
	ev := v.log.Debug().Str("frame", name).Int("chunk_len", len(p))
	if v.hexPayloads {
		ev = ev.Str("chunk", hex.EncodeToString(p))
	}
	ev.Msg("payload")
	return true
}

func (v *dumpVisitor) OnError(d *http3.Decoder) {
	v.log.Error().
		Stringer("kind", d.ErrorKind()).
		Stringer("frame", d.CurrentFrameType()).
		Msg(d.ErrorDetail())
}

func (v *dumpVisitor) OnDataFrameStart(headerLen, payloadLen uint64) bool {
	v.frame("DATA", headerLen).Uint64("payload_len", payloadLen).Msg("start")
	return true
}
func (v *dumpVisitor) OnDataFramePayload(p []byte) bool { return v.payload("DATA", p) }
func (v *dumpVisitor) OnDataFrameEnd() bool {
	v.log.Debug().Str("frame", "DATA").Msg("end")
	return true
}

func (v *dumpVisitor) OnHeadersFrameStart(headerLen, payloadLen uint64) bool {
	v.frame("HEADERS", headerLen).Uint64("payload_len", payloadLen).Msg("start")
	return true
}
func (v *dumpVisitor) OnHeadersFramePayload(p []byte) bool { return v.payload("HEADERS", p) }
func (v *dumpVisitor) OnHeadersFrameEnd() bool {
	v.log.Debug().Str("frame", "HEADERS").Msg("end")
	return true
}

func (v *dumpVisitor) OnCancelPushFrameStart(headerLen uint64) bool { return true }
func (v *dumpVisitor) OnCancelPushFrame(f http3.CancelPushFrame) bool {
	v.frame("CANCEL_PUSH", 0).Uint64("push_id", f.PushID).Msg("")
	return true
}

func (v *dumpVisitor) OnSettingsFrameStart(headerLen uint64) bool { return true }
func (v *dumpVisitor) OnSettingsFrame(f http3.SettingsFrame) bool {
	ev := v.frame("SETTINGS", 0).Int("settings", len(f.Values))
	for id, value := range f.Values {
		ev = ev.Uint64(http3.SettingName(id), value)
	}
	ev.Msg("")
	return true
}

func (v *dumpVisitor) OnPushPromiseFrameStart(headerLen uint64) bool {
	v.frame("PUSH_PROMISE", headerLen).Msg("start")
	return true
}
func (v *dumpVisitor) OnPushPromiseFramePushID(pushID, pushIDLen, headerBlockLen uint64) bool {
	v.log.Info().Str("frame", "PUSH_PROMISE").
		Uint64("push_id", pushID).
		Uint64("header_block_len", headerBlockLen).
		Msg("push id")
	return true
}
func (v *dumpVisitor) OnPushPromiseFramePayload(p []byte) bool { return v.payload("PUSH_PROMISE", p) }
func (v *dumpVisitor) OnPushPromiseFrameEnd() bool {
	v.log.Debug().Str("frame", "PUSH_PROMISE").Msg("end")
	return true
}

func (v *dumpVisitor) OnGoAwayFrameStart(headerLen uint64) bool { return true }
func (v *dumpVisitor) OnGoAwayFrame(f http3.GoAwayFrame) bool {
	v.frame("GOAWAY", 0).Uint64("id", f.ID).Msg("")
	return true
}

func (v *dumpVisitor) OnMaxPushIDFrameStart(headerLen uint64) bool { return true }
func (v *dumpVisitor) OnMaxPushIDFrame(f http3.MaxPushIDFrame) bool {
	v.frame("MAX_PUSH_ID", 0).Uint64("push_id", f.PushID).Msg("")
	return true
}

func (v *dumpVisitor) OnPriorityUpdateFrameStart(headerLen uint64) bool { return true }
func (v *dumpVisitor) OnPriorityUpdateFrame(f http3.PriorityUpdateFrame) bool {
	element := "request stream"
	if f.PrioritizedElementType == http3.PriorityElementPushStream {
		element = "push stream"
	}
	v.frame("PRIORITY_UPDATE", 0).
		Str("element", element).
		Uint64("element_id", f.PrioritizedElementID).
		Bytes("priority", f.PriorityFieldValue).
		Msg("")
	return true
}

func (v *dumpVisitor) OnAcceptCHFrameStart(headerLen uint64) bool { return true }
func (v *dumpVisitor) OnAcceptCHFrame(f http3.AcceptCHFrame) bool {
	ev := v.frame("ACCEPT_CH", 0).Int("entries", len(f.Entries))
	for _, e := range f.Entries {
		ev = ev.Str(e.Origin, e.Value)
	}
	ev.Msg("")
	return true
}

func (v *dumpVisitor) OnWebTransportStreamFrameType(headerLen, sessionID uint64) bool {
	v.delegated = true
	v.delegatedSession = sessionID
	v.frame("WEBTRANSPORT_STREAM", headerLen).Uint64("session_id", sessionID).Msg("stream delegated")
	return true
}

func (v *dumpVisitor) OnUnknownFrameStart(t http3.FrameType, headerLen, payloadLen uint64) bool {
	ev := v.frame(t.String(), headerLen).Uint64("payload_len", payloadLen)
	if t.IsReserved() {
		ev = ev.Bool("reserved", true)
	}
	ev.Msg("start")
	return true
}
func (v *dumpVisitor) OnUnknownFramePayload(p []byte) bool { return v.payload("unknown", p) }
func (v *dumpVisitor) OnUnknownFrameEnd() bool {
	v.log.Debug().Str("frame", "unknown").Msg("end")
	return true
}

func (v *dumpVisitor) summary(consumed int) {
	ev := v.log.Info().Int("bytes", consumed).Int("frames", v.frames).Uint64("payload_bytes", v.payloadBytes)
	for name, count := range v.perType {
		ev = ev.Int(name, count)
	}
	ev.Msg("stream complete")
}
