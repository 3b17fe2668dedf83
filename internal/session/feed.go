package session

// Feed hands updates to a slower consumer (rendering, audio) without ever
// blocking the event path. When the buffer is full the oldest snapshot is
// dropped; the consumer only ever falls behind on intermediate frames, never
// on the most recent state.
type Feed struct {
	ch chan Update
}

// NewFeed returns a feed with the given buffer size (minimum 1).
func NewFeed(buffer int) *Feed {
	if buffer < 1 {
		buffer = 1
	}
	return &Feed{ch: make(chan Update, buffer)}
}

// Publish enqueues an update, discarding the oldest pending one if needed.
// Safe only for a single publisher, matching the single ingestion path.
func (f *Feed) Publish(u Update) {
	for {
		select {
		case f.ch <- u:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// Updates is the consumer side of the feed.
func (f *Feed) Updates() <-chan Update {
	return f.ch
}

// Close releases the feed. Publish must not be called afterwards.
func (f *Feed) Close() {
	close(f.ch)
}
