package steno

import (
	"fmt"
	"math/bits"
	"strings"
)

// With returns s with key k added. Drift keys are rejected.
func (s Stroke) With(k Key) Stroke {
	if k >= NumKeys {
		return s
	}
	return s | 1<<k
}

// Without returns s with key k removed.
func (s Stroke) Without(k Key) Stroke {
	if k >= NumKeys {
		return s
	}
	return s &^ (1 << k)
}

// Has reports whether key k is in the stroke.
func (s Stroke) Has(k Key) bool {
	return k < NumKeys && s&(1<<k) != 0
}

// Len returns the number of keys in the stroke.
func (s Stroke) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Empty reports whether the stroke has no keys.
func (s Stroke) Empty() bool {
	return s == 0
}

// SubsetOf reports whether every key of s is also in t.
func (s Stroke) SubsetOf(t Stroke) bool {
	return s&^t == 0
}

// Overlap returns the number of keys shared by s and t.
func (s Stroke) Overlap(t Stroke) int {
	return bits.OnesCount32(uint32(s & t))
}

// Union returns the combined key set of s and t.
func (s Stroke) Union(t Stroke) Stroke {
	return s | t
}

// Keys returns the stroke's keys in steno order.
func (s Stroke) Keys() []Key {
	out := make([]Key, 0, s.Len())
	for k := Key(0); k < NumKeys; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

const (
	hashKey   = Key(0)  // #
	starKey   = Key(10) // *
	rightBank = Key(13) // -F, first right-bank key
)

var vowelMask = EmptyStroke.
	With(Key(8)).  // A
	With(Key(9)).  // O
	With(Key(11)). // E
	With(Key(12))  // U

var leftMask = func() Stroke {
	var m Stroke
	for k := Key(1); k <= Key(7); k++ {
		m = m.With(k)
	}
	return m
}()

var rightMask = func() Stroke {
	var m Stroke
	for k := rightBank; k < NumKeys; k++ {
		m = m.With(k)
	}
	return m
}()

// Parse converts stroke notation into a key set. The parser walks the string
// left to right, binding each character to the next matching position in
// steno order; a hyphen advances past the vowels so "-T" and "T-" resolve to
// different keys.
func Parse(notation string) (Stroke, error) {
	var stroke Stroke
	pos := Key(0)
	for _, ch := range notation {
		if ch == '-' {
			if pos < rightBank {
				pos = rightBank
			}
			continue
		}
		found := false
		for k := pos; k < NumKeys; k++ {
			if keyMatchesChar(k, ch) {
				stroke = stroke.With(k)
				pos = k + 1
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("cannot place %q in stroke %q", string(ch), notation)
		}
	}
	return stroke, nil
}

func keyMatchesChar(k Key, ch rune) bool {
	return k.Label() == string(ch)
}

// String renders the stroke in notation form, inserting a hyphen when
// right-bank keys would otherwise be ambiguous.
func (s Stroke) String() string {
	if s.Empty() {
		return ""
	}
	hasMiddle := s&vowelMask != 0 || s.Has(starKey)
	hasLeft := s&leftMask != 0
	hasRight := s&rightMask != 0

	var b strings.Builder
	needHyphen := hasRight && !hasMiddle
	if needHyphen && !hasLeft && !s.Has(hashKey) {
		b.WriteByte('-')
		needHyphen = false
	}
	for k := Key(0); k < NumKeys; k++ {
		if !s.Has(k) {
			continue
		}
		if needHyphen && k >= rightBank {
			b.WriteByte('-')
			needHyphen = false
		}
		b.WriteString(k.Label())
	}
	return b.String()
}

// ParseSequence parses a "/"-separated multi-stroke sequence.
func ParseSequence(notation string) ([]Stroke, error) {
	parts := strings.Split(notation, "/")
	seq := make([]Stroke, 0, len(parts))
	for _, part := range parts {
		stroke, err := Parse(part)
		if err != nil {
			return nil, err
		}
		if stroke.Empty() {
			return nil, fmt.Errorf("empty stroke in sequence %q", notation)
		}
		seq = append(seq, stroke)
	}
	return seq, nil
}

// FormatSequence renders a multi-stroke sequence in "/" notation.
func FormatSequence(seq []Stroke) string {
	parts := make([]string, len(seq))
	for i, s := range seq {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}
