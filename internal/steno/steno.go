// Package steno defines the steno key alphabet and stroke notation.
package steno

import "fmt"

// Key indexes the canonical steno order. Values at NumKeys and above are
// drift keys: tracked for display, never part of a stroke.
type Key uint8

// NumKeys is the size of the evaluated steno alphabet.
const NumKeys = 23

// Drift keys sit one column left of S- on the machine. They are visible on
// the keyboard but excluded from chord matching.
const (
	DriftUpper Key = NumKeys + iota
	DriftLower

	numAllKeys
)

// Order lists the evaluated keys in steno order. Left-bank keys carry a
// trailing hyphen, right-bank keys a leading hyphen.
var Order = [NumKeys]string{
	"#",
	"S-", "T-", "K-", "P-", "W-", "H-", "R-",
	"A", "O",
	"*",
	"E", "U",
	"-F", "-R", "-P", "-B", "-L", "-G", "-T", "-S", "-D", "-Z",
}

var driftNames = map[Key]string{
	DriftUpper: "_L1",
	DriftLower: "_L2",
}

var nameToKey = func() map[string]Key {
	m := make(map[string]Key, numAllKeys)
	for i, name := range Order {
		m[name] = Key(i)
	}
	for k, name := range driftNames {
		m[name] = k
	}
	return m
}()

// KeyByName resolves a canonical key name, including drift key names.
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// Valid reports whether k is inside the known key alphabet.
func (k Key) Valid() bool {
	return k < numAllKeys
}

// Drift reports whether k is an unevaluated drift key.
func (k Key) Drift() bool {
	return k >= NumKeys && k < numAllKeys
}

// Name returns the canonical key name, e.g. "S-" or "-T".
func (k Key) Name() string {
	if k < NumKeys {
		return Order[k]
	}
	if name, ok := driftNames[k]; ok {
		return name
	}
	return fmt.Sprintf("?%d", uint8(k))
}

// Label returns the display label for the key face (hyphens stripped).
func (k Key) Label() string {
	switch {
	case k >= NumKeys:
		return " "
	case k == 0:
		return "#"
	}
	name := Order[k]
	if name[0] == '-' {
		return name[1:]
	}
	if name[len(name)-1] == '-' {
		return name[:len(name)-1]
	}
	return name
}

// Stroke is a set of evaluated steno keys, one bit per position in Order.
// Drift keys have no bit and must be filtered before a key reaches a Stroke.
type Stroke uint32

// EmptyStroke is the stroke with no keys.
const EmptyStroke Stroke = 0
