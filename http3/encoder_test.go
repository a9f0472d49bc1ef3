package http3

import (
	"bytes"
	"testing"
)

func TestAppendDataFrameHeader(t *testing.T) {
	got := AppendDataFrameHeader(nil, 5)
	want := []byte{0x00, 0x05}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAppendHeadersFrameHeader(t *testing.T) {
	got := AppendHeadersFrameHeader(nil, 7)
	want := []byte{0x01, 0x07}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAppendSettingsFrame(t *testing.T) {
	got := AppendSettingsFrame(nil, SettingsFrame{Values: map[uint64]uint64{
		1:   2,
		6:   5,
		256: 4,
	}})
	// Identifiers in ascending order, so the output is fixed.
	want := unhex(t, "04 07 01 02 06 05 4100 04")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAppendPushPromiseFrameHeader(t *testing.T) {
	header := AppendPushPromiseFrameHeader(nil, 257, 7)
	input := append(header, "Headers"...)

	v := &fakeVisitor{}
	d := newTestDecoder(t, v, Config{})
	if n := d.Feed(input); n != len(input) {
		t.Fatalf("consumed %d, want %d", n, len(input))
	}
	wantNoError(t, d)
	wantEvents(t, v,
		"push_promise start h=2",
		"push_promise id id=257 idlen=2 hblen=7",
		`push_promise payload "Headers"`,
		"push_promise end")
}

func TestAppendWebTransportStreamFrameHeader(t *testing.T) {
	input := AppendWebTransportStreamFrameHeader(nil, 260)

	v := &fakeVisitor{}
	d := newTestDecoder(t, v, Config{AllowWebTransportStream: true})
	if n := d.Feed(input); n != len(input) {
		t.Fatalf("consumed %d, want %d", n, len(input))
	}
	wantNoError(t, d)
	wantEvents(t, v, "webtransport h=4 session=260")
}

// TestEncodeDecodeRoundTrip feeds each encoder's output back through the
// decoder and checks the record survives intact.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []string
	}{
		{
			"cancel push",
			AppendCancelPushFrame(nil, CancelPushFrame{PushID: 1}),
			[]string{"cancel_push start h=2", "cancel_push id=1"},
		},
		{
			"max push id",
			AppendMaxPushIDFrame(nil, MaxPushIDFrame{PushID: 16384}),
			[]string{"max_push_id start h=2", "max_push_id id=16384"},
		},
		{
			"goaway",
			AppendGoAwayFrame(nil, GoAwayFrame{ID: 64}),
			[]string{"goaway start h=2", "goaway id=64"},
		},
		{
			"priority update",
			AppendPriorityUpdateFrame(nil, PriorityUpdateFrame{
				PrioritizedElementID: 12,
				PriorityFieldValue:   []byte("u=3,i"),
			}),
			[]string{"priority_update start h=9", `priority_update type=0x00 id=12 value="u=3,i"`},
		},
		{
			"accept ch",
			AppendAcceptCHFrame(nil, AcceptCHFrame{Entries: []AcceptCHEntry{
				{Origin: "https://example.org", Value: "dpr"},
			}}),
			[]string{"accept_ch start h=3", "accept_ch [{https://example.org dpr}]"},
		},
		{
			"grease",
			AppendGreaseFrame(nil, 2, []byte("ok")),
			[]string{"unknown start t=0x5f h=3 p=2", `unknown payload "ok"`, "unknown end"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := &fakeVisitor{}
			d := newTestDecoder(t, v, Config{})
			if n := d.Feed(tc.input); n != len(tc.input) {
				t.Fatalf("consumed %d, want %d", n, len(tc.input))
			}
			wantNoError(t, d)
			wantEvents(t, v, tc.want...)
		})
	}
}

func TestAppendLegacyPriorityUpdateFrame(t *testing.T) {
	input := AppendLegacyPriorityUpdateFrame(nil, PriorityUpdateFrame{
		PrioritizedElementType: PriorityElementPushStream,
		PrioritizedElementID:   5,
		PriorityFieldValue:     []byte("foo"),
	})
	if !bytes.Equal(input, unhex(t, "0f 05 80 05 666f6f")) {
		t.Fatalf("encoding = %x", input)
	}

	v := &fakeVisitor{}
	d := newTestDecoder(t, v, Config{AcceptLegacyPriorityUpdate: true})
	if n := d.Feed(input); n != len(input) {
		t.Fatalf("consumed %d, want %d", n, len(input))
	}
	wantNoError(t, d)
	wantEvents(t, v, "priority_update start h=2", `priority_update type=0x80 id=5 value="foo"`)
}
