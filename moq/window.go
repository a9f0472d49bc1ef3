package moq

// SubscribeWindow is the range of objects one subscription covers. The start
// is inclusive; a window without an end covers everything from the start on.
type SubscribeWindow struct {
	SubscribeID uint64

	start   FullSequence
	end     FullSequence
	bounded bool
}

// NewSubscribeWindow returns an open-ended window starting at
// (startGroup, startObject).
func NewSubscribeWindow(subscribeID, startGroup, startObject uint64) SubscribeWindow {
	return SubscribeWindow{
		SubscribeID: subscribeID,
		start:       FullSequence{Group: startGroup, Object: startObject},
	}
}

// NewBoundedSubscribeWindow returns a window covering (startGroup,
// startObject) through (endGroup, endObject), both inclusive.
func NewBoundedSubscribeWindow(subscribeID, startGroup, startObject, endGroup, endObject uint64) SubscribeWindow {
	return SubscribeWindow{
		SubscribeID: subscribeID,
		start:       FullSequence{Group: startGroup, Object: startObject},
		end:         FullSequence{Group: endGroup, Object: endObject},
		bounded:     true,
	}
}

// Start returns the first sequence the window covers.
func (w SubscribeWindow) Start() FullSequence { return w.start }

// End returns the last covered sequence, if the window is bounded.
func (w SubscribeWindow) End() (FullSequence, bool) { return w.end, w.bounded }

// InWindow reports whether seq falls inside the window.
func (w SubscribeWindow) InWindow(seq FullSequence) bool {
	if seq.Less(w.start) {
		return false
	}
	return !w.bounded || !w.end.Less(seq)
}
