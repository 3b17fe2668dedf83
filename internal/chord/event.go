// Package chord turns key transition streams into evaluated steno chords.
package chord

import (
	"time"

	"github.com/dewtone/stenodactylus/internal/steno"
)

// Event is one key transition from the input transport. Events for a single
// key alternate press/release; events across keys interleave freely as the
// fingers roll on and off.
type Event struct {
	Key     steno.Key
	Pressed bool
	At      time.Time
}

// Completed is an emitted chord: the union of every evaluated key touched
// between the first press from rest and the final release.
type Completed struct {
	Union   steno.Stroke
	Started time.Time
	Ended   time.Time
}
