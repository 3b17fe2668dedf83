// Package sound builds descriptors for the audio renderer. Nothing here
// touches an audio device; the renderer turns these values into waveforms.
package sound

import (
	"math/rand"

	"github.com/dewtone/stenodactylus/internal/steno"
)

// A4 tuning of 432 Hz puts the reward tone's C4 fundamental near 257 Hz.
const baseFreq = 432.0 * 0.5946035575013605 // C4 = A4 * 2^(-9/12)

// Key switch transient parameters, carried over from listening tests.
const (
	impactAmount  = 0.3743
	impactFreq    = 374.80
	impactDecayMs = 3.294
	clickAmount   = 0.7046
	clickFreq     = 4124.78
	clickDecayMs  = 3.020
	thockAmount   = 0.5394
	thockFreq     = 83.47
	thockDecayMs  = 14.789
	gap1Ms        = 3.698
	gap2Ms        = 9.278

	forceVariation  = 0.2893
	forceAmpScale   = 0.4680
	forceClickBoost = 0.2229

	burstBaseAmp = 0.45
	keySpacingMs = 5.0
)

// Component is one filtered-noise layer of a key transient.
type Component struct {
	Amp     float64
	Freq    float64
	DecayMs float64
}

// Transient describes the sound of a single key in a typing burst.
type Transient struct {
	Key    steno.Key
	Pan    float64 // -1 hard left .. +1 hard right
	AtMs   float64 // offset from burst start
	Impact Component
	Click  Component
	Thock  Component
}

// TypingBurst describes one transient per key of a completed chord, in
// steno order so the burst sweeps left to right. Per-key force variation
// scales amplitude and click presence, like uneven finger pressure would.
func TypingBurst(union steno.Stroke, rnd *rand.Rand) []Transient {
	keys := union.Keys()
	out := make([]Transient, 0, len(keys))
	at := 0.0
	for _, k := range keys {
		force := 1 + (rnd.Float64()*2-1)*forceVariation
		amp := burstBaseAmp * (1 + (force-1)*forceAmpScale)
		clickBoost := 1 + (force-1)*forceClickBoost

		out = append(out, Transient{
			Key:    k,
			Pan:    steno.Pan(k),
			AtMs:   at,
			Impact: Component{Amp: amp * impactAmount, Freq: impactFreq, DecayMs: impactDecayMs},
			Click:  Component{Amp: amp * clickAmount * clickBoost, Freq: clickFreq, DecayMs: clickDecayMs},
			Thock:  Component{Amp: amp * thockAmount, Freq: thockFreq, DecayMs: thockDecayMs},
		})
		at += gap1Ms/force + gap2Ms/force + keySpacingMs
	}
	return out
}
