// Package moq keeps per-track bookkeeping for media-over-QUIC style
// publishing: which object a track will produce next, which subscriptions
// are attached to it, and which of them a given object falls into.
package moq

// FullTrackName identifies a track by namespace and name.
type FullTrackName struct {
	Namespace string
	Name      string
}

func (n FullTrackName) String() string {
	return n.Namespace + "/" + n.Name
}

// FullSequence identifies one object within a track. Sequences order first
// by group, then by object.
type FullSequence struct {
	Group  uint64
	Object uint64
}

// Less reports whether s orders before o.
func (s FullSequence) Less(o FullSequence) bool {
	if s.Group != o.Group {
		return s.Group < o.Group
	}
	return s.Object < o.Object
}

// Next returns the sequence of the following object in the same group.
func (s FullSequence) Next() FullSequence {
	return FullSequence{Group: s.Group, Object: s.Object + 1}
}

// LocalTrackVisitor is notified about subscriptions on a published track.
type LocalTrackVisitor interface {
	// OnSubscribeForPast fires when a subscription starts before the next
	// sequence, so already-published objects have to be retrieved.
	OnSubscribeForPast(w SubscribeWindow)
}

// LocalTrack is a track this endpoint publishes. Not safe for concurrent
// use.
type LocalTrack struct {
	name    FullTrackName
	visitor LocalTrackVisitor
	next    FullSequence
	windows []SubscribeWindow

	alias    uint64
	hasAlias bool
}

// NewLocalTrack returns a track publishing under name. next is the sequence
// of the first object that has not been sent yet.
func NewLocalTrack(name FullTrackName, visitor LocalTrackVisitor, next FullSequence) *LocalTrack {
	return &LocalTrack{name: name, visitor: visitor, next: next}
}

func (t *LocalTrack) FullTrackName() FullTrackName { return t.name }

func (t *LocalTrack) Visitor() LocalTrackVisitor { return t.visitor }

// NextSequence returns the sequence of the next object the track will send.
func (t *LocalTrack) NextSequence() FullSequence { return t.next }

// SentSequence records that the object at seq has been sent. The next
// sequence only moves forward.
func (t *LocalTrack) SentSequence(seq FullSequence) {
	if !seq.Less(t.next) {
		t.next = seq.Next()
	}
}

// TrackAlias returns the alias assigned to the track, if any.
func (t *LocalTrack) TrackAlias() (uint64, bool) {
	return t.alias, t.hasAlias
}

// SetTrackAlias assigns the numeric alias used on the wire instead of the
// full track name.
func (t *LocalTrack) SetTrackAlias(alias uint64) {
	t.alias = alias
	t.hasAlias = true
}

// AddWindow attaches a subscription. A window starting in the past is
// reported to the visitor.
func (t *LocalTrack) AddWindow(w SubscribeWindow) {
	t.windows = append(t.windows, w)
	if t.visitor != nil && w.start.Less(t.next) {
		t.visitor.OnSubscribeForPast(w)
	}
}

// DeleteWindow removes the subscription with the given id.
func (t *LocalTrack) DeleteWindow(subscribeID uint64) {
	for i, w := range t.windows {
		if w.SubscribeID == subscribeID {
			t.windows = append(t.windows[:i], t.windows[i+1:]...)
			return
		}
	}
}

// HasSubscriber reports whether any subscription is attached.
func (t *LocalTrack) HasSubscriber() bool {
	return len(t.windows) > 0
}

// ShouldSend returns the subscribe ids of all windows the object at seq
// falls into.
func (t *LocalTrack) ShouldSend(seq FullSequence) []uint64 {
	var ids []uint64
	for _, w := range t.windows {
		if w.InWindow(seq) {
			ids = append(ids, w.SubscribeID)
		}
	}
	return ids
}

// RemoteTrackVisitor receives objects arriving on a subscribed track.
type RemoteTrackVisitor interface {
	OnObjectFragment(name FullTrackName, seq FullSequence, payload []byte, fin bool)
}

// RemoteTrack is a track this endpoint has subscribed to. Unlike a local
// track it always has an alias, assigned by the subscribe exchange.
type RemoteTrack struct {
	name    FullTrackName
	alias   uint64
	visitor RemoteTrackVisitor
}

func NewRemoteTrack(name FullTrackName, alias uint64, visitor RemoteTrackVisitor) *RemoteTrack {
	return &RemoteTrack{name: name, alias: alias, visitor: visitor}
}

func (t *RemoteTrack) FullTrackName() FullTrackName { return t.name }

func (t *RemoteTrack) TrackAlias() uint64 { return t.alias }

func (t *RemoteTrack) Visitor() RemoteTrackVisitor { return t.visitor }
