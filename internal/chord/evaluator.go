package chord

import "github.com/dewtone/stenodactylus/internal/steno"

// Evaluator narrows candidate strokes as a chord grows and judges the chord
// on completion. An entry may have several alternatives, each a sequence of
// one or more strokes; the evaluator tracks the active position in the
// sequence and offers the strokes every alternative provides there.
type Evaluator struct {
	alternatives [][]steno.Stroke
	pos          int
}

// NewEvaluator builds an evaluator over the entry's stroke alternatives.
func NewEvaluator(alternatives [][]steno.Stroke) *Evaluator {
	return &Evaluator{alternatives: alternatives}
}

// Pos returns the active position in the multi-stroke sequence.
func (e *Evaluator) Pos() int { return e.pos }

// MaxSequenceLen returns the length of the longest alternative.
func (e *Evaluator) MaxSequenceLen() int {
	maxLen := 0
	for _, alt := range e.alternatives {
		if len(alt) > maxLen {
			maxLen = len(alt)
		}
	}
	return maxLen
}

// Targets returns the candidate strokes at the active position, one per
// alternative that still has a stroke there.
func (e *Evaluator) Targets() []steno.Stroke {
	targets := make([]steno.Stroke, 0, len(e.alternatives))
	for _, alt := range e.alternatives {
		if e.pos < len(alt) {
			targets = append(targets, alt[e.pos])
		}
	}
	return targets
}

// Compatible returns the candidate strokes the growing union can still
// become: those with union as a subset. Adding a key to the union can only
// shrink this set, never grow it.
func (e *Evaluator) Compatible(union steno.Stroke) []steno.Stroke {
	targets := e.Targets()
	out := make([]steno.Stroke, 0, len(targets))
	for _, s := range targets {
		if union.SubsetOf(s) {
			out = append(out, s)
		}
	}
	return out
}

// Nearest returns the candidate stroke with the greatest key overlap with
// the union, preferring fewer total keys on ties. It is feedback annotation
// for a missed chord, not a match. ok is false when there are no candidates.
func (e *Evaluator) Nearest(union steno.Stroke) (nearest steno.Stroke, ok bool) {
	bestOverlap, bestLen := -1, 0
	for _, s := range e.Targets() {
		overlap := union.Overlap(s)
		if overlap > bestOverlap || (overlap == bestOverlap && s.Len() < bestLen) {
			nearest, ok = s, true
			bestOverlap, bestLen = overlap, s.Len()
		}
	}
	return nearest, ok
}

// Match reports whether a completed union equals a candidate stroke exactly.
// A strict subset of a candidate (fingers lifted early) is not a match.
func (e *Evaluator) Match(union steno.Stroke) bool {
	if union.Empty() {
		return false
	}
	for _, s := range e.Targets() {
		if union == s {
			return true
		}
	}
	return false
}

// Advance moves to the next stroke position after a match. It reports
// whether the entry is complete: some alternative has no stroke left.
func (e *Evaluator) Advance() bool {
	e.pos++
	for _, alt := range e.alternatives {
		if e.pos >= len(alt) {
			return true
		}
	}
	return false
}

// Reset returns to the first stroke position.
func (e *Evaluator) Reset() {
	e.pos = 0
}
