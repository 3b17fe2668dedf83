package chord

import (
	"log/slog"
	"time"

	"github.com/dewtone/stenodactylus/internal/steno"
)

// Accumulator folds key transitions into chords. A chord opens on the first
// press while the board is at rest and closes the instant every held key is
// released; the union never shrinks while the chord is open.
//
// Transport faults (release of a key that is not held, a second press
// without an intervening release) are reported through the logger and
// absorbed: the accumulator self-corrects and the session keeps running.
type Accumulator struct {
	pressed steno.Stroke
	union   steno.Stroke
	active  bool
	started time.Time

	drift driftState
	log   *slog.Logger
}

type driftState [2]bool

// NewAccumulator returns an accumulator reporting anomalies to log.
// A nil logger discards reports.
func NewAccumulator(log *slog.Logger) *Accumulator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Accumulator{log: log}
}

// Active reports whether a chord is being built.
func (a *Accumulator) Active() bool { return a.active }

// Pressed returns the currently held evaluated keys.
func (a *Accumulator) Pressed() steno.Stroke { return a.pressed }

// Union returns every evaluated key touched since the chord opened.
func (a *Accumulator) Union() steno.Stroke { return a.union }

// DriftHeld reports whether the upper and lower drift keys are held.
func (a *Accumulator) DriftHeld() (upper, lower bool) {
	return a.drift[0], a.drift[1]
}

// OnEvent applies one key transition. It returns the completed chord, and
// true, exactly when the event releases the last held key.
func (a *Accumulator) OnEvent(e Event) (Completed, bool) {
	if !e.Key.Valid() {
		a.log.Warn("unknown key in event stream", "key", uint8(e.Key))
		return Completed{}, false
	}
	if e.Key.Drift() {
		a.drift[e.Key-steno.DriftUpper] = e.Pressed
		return Completed{}, false
	}

	if e.Pressed {
		a.press(e)
		return Completed{}, false
	}
	return a.release(e)
}

func (a *Accumulator) press(e Event) {
	if a.pressed.Has(e.Key) {
		a.log.Warn("double press without release", "key", e.Key.Name())
		return
	}
	if !a.active {
		a.active = true
		a.union = steno.EmptyStroke
		a.started = e.At
	}
	a.pressed = a.pressed.With(e.Key)
	a.union = a.union.With(e.Key)
}

func (a *Accumulator) release(e Event) (Completed, bool) {
	if !a.pressed.Has(e.Key) {
		a.log.Warn("release of key not held", "key", e.Key.Name())
		return Completed{}, false
	}
	a.pressed = a.pressed.Without(e.Key)
	if !a.active || !a.pressed.Empty() {
		return Completed{}, false
	}

	done := Completed{
		Union:   a.union,
		Started: a.started,
		Ended:   e.At,
	}
	a.active = false
	a.union = steno.EmptyStroke
	return done, true
}
