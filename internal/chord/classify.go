package chord

import "github.com/dewtone/stenodactylus/internal/steno"

// KeyState is the five-state visual classification of one key.
type KeyState uint8

const (
	// Grey: the key has not been touched this chord.
	Grey KeyState = iota
	// BrightGreen: held, and part of a still-compatible stroke.
	BrightGreen
	// DimGreen: touched and released, part of a still-compatible stroke.
	DimGreen
	// BrightRed: held, part of no compatible stroke.
	BrightRed
	// DimRed: touched and released, part of no compatible stroke.
	DimRed
)

// Frame is a full classification of the evaluated keyboard.
type Frame [steno.NumKeys]KeyState

// Classify derives the frame from the chord union, the held keys, and the
// still-compatible strokes. Keys in the union stay dim after release rather
// than reverting to grey, so a mistake remains visible until the chord ends.
func Classify(union, pressed steno.Stroke, compatible []steno.Stroke) Frame {
	var wanted steno.Stroke
	for _, s := range compatible {
		wanted = wanted.Union(s)
	}

	var f Frame
	for k := steno.Key(0); k < steno.NumKeys; k++ {
		switch {
		case !union.Has(k):
			f[k] = Grey
		case wanted.Has(k):
			if pressed.Has(k) {
				f[k] = BrightGreen
			} else {
				f[k] = DimGreen
			}
		default:
			if pressed.Has(k) {
				f[k] = BrightRed
			} else {
				f[k] = DimRed
			}
		}
	}
	return f
}
