package dict

import (
	"math/rand"
	"time"

	"github.com/dewtone/stenodactylus/internal/steno"
)

// Selector picks the next practice entry. Prompt scheduling stays outside
// the chord engine; the selector is what the CLI wires in.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector seeded with the current time.
func NewSelector() *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSelectorWithSource returns a Selector with a fixed source, for tests.
func NewSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src)}
}

// Pick selects an entry index uniformly.
func (s *Selector) Pick(entries []Entry) int {
	if len(entries) == 0 {
		return -1
	}
	return s.rnd.Intn(len(entries))
}

// PickWeighted biases selection toward entries containing weak strokes:
// each weak stroke in an entry's alternatives adds factor to its weight.
func (s *Selector) PickWeighted(entries []Entry, weak map[string]struct{}, factor float64) int {
	if len(entries) == 0 {
		return -1
	}
	if len(weak) == 0 || factor <= 0 {
		return s.Pick(entries)
	}

	weights := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		w := 1.0 + float64(weakStrokeCount(e, weak))*factor
		weights[i] = w
		total += w
	}

	r := s.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(entries) - 1
}

func weakStrokeCount(e Entry, weak map[string]struct{}) int {
	count := 0
	seen := map[steno.Stroke]struct{}{}
	for _, alt := range e.Alternatives {
		for _, stroke := range alt {
			if _, dup := seen[stroke]; dup {
				continue
			}
			seen[stroke] = struct{}{}
			if _, ok := weak[stroke.String()]; ok {
				count++
			}
		}
	}
	return count
}
