package chord

import (
	"testing"

	"github.com/dewtone/stenodactylus/internal/steno"
)

func alts(t *testing.T, sequences ...string) [][]steno.Stroke {
	t.Helper()
	out := make([][]steno.Stroke, 0, len(sequences))
	for _, seq := range sequences {
		parsed, err := steno.ParseSequence(seq)
		if err != nil {
			t.Fatalf("parse %q: %v", seq, err)
		}
		out = append(out, parsed)
	}
	return out
}

func TestCompatibleNarrowsMonotonically(t *testing.T) {
	eval := NewEvaluator(alts(t, "SWR", "SWR-F"))

	var union steno.Stroke
	prev := len(eval.Compatible(union))
	for _, name := range []string{"S-", "W-", "R-", "-F"} {
		k, _ := steno.KeyByName(name)
		union = union.With(k)
		got := len(eval.Compatible(union))
		if got > prev {
			t.Fatalf("compatible grew from %d to %d after %s", prev, got, name)
		}
		prev = got
	}
	if prev != 1 {
		t.Fatalf("compatible = %d after full SWR-F, want 1", prev)
	}
}

func TestPartialUnionKeepsBothAlternatives(t *testing.T) {
	eval := NewEvaluator(alts(t, "SWR", "SWR-F"))
	union := mustStroke(t, "S")
	if got := len(eval.Compatible(union)); got != 2 {
		t.Fatalf("compatible(S) = %d, want 2", got)
	}
}

func TestExactMatchRequired(t *testing.T) {
	eval := NewEvaluator(alts(t, "SWR", "SWR-F"))

	if !eval.Match(mustStroke(t, "SWR")) {
		t.Fatal("SWR should match exactly")
	}
	if !eval.Match(mustStroke(t, "SWR-F")) {
		t.Fatal("SWR-F should match exactly")
	}
	// A strict subset is compatible but released too early: not a match.
	if eval.Match(mustStroke(t, "SW")) {
		t.Fatal("strict subset must not match")
	}
	if eval.Match(steno.EmptyStroke) {
		t.Fatal("empty union must never match")
	}
}

func TestExtraKeyEmptiesCompatible(t *testing.T) {
	eval := NewEvaluator(alts(t, "ST"))
	union := mustStroke(t, "SK")
	if got := len(eval.Compatible(union)); got != 0 {
		t.Fatalf("compatible = %d, want 0 after wrong key", got)
	}
	nearest, ok := eval.Nearest(union)
	if !ok || nearest != mustStroke(t, "ST") {
		t.Fatalf("nearest = %v, %v", nearest, ok)
	}
	if eval.Match(union) {
		t.Fatal("chord with a wrong key must not match")
	}
}

func TestSupersetOfEveryCandidateFallsToNearest(t *testing.T) {
	eval := NewEvaluator(alts(t, "SWR"))
	union := mustStroke(t, "SWR-F")
	if got := len(eval.Compatible(union)); got != 0 {
		t.Fatalf("compatible = %d, want 0 for a superset union", got)
	}
	if eval.Match(union) {
		t.Fatal("superset union must not match")
	}
}

func TestNearestPrefersOverlapThenFewerKeys(t *testing.T) {
	eval := NewEvaluator(alts(t, "STKPW", "ST"))
	union := mustStroke(t, "S")

	// Equal overlap of 1; the two-key stroke wins the tie.
	nearest, ok := eval.Nearest(union)
	if !ok || nearest != mustStroke(t, "ST") {
		t.Fatalf("nearest = %v, want ST", nearest)
	}

	// More overlap beats fewer keys.
	nearest, ok = eval.Nearest(mustStroke(t, "SKW"))
	if !ok || nearest != mustStroke(t, "STKPW") {
		t.Fatalf("nearest = %v, want STKPW", nearest)
	}
}

func TestNearestWithoutCandidates(t *testing.T) {
	eval := NewEvaluator(nil)
	if _, ok := eval.Nearest(mustStroke(t, "S")); ok {
		t.Fatal("nearest should report no candidates")
	}
}

func TestAdvanceThroughMultiStrokeEntry(t *testing.T) {
	eval := NewEvaluator(alts(t, "PEUBG/KHUR"))

	if !eval.Match(mustStroke(t, "PEUBG")) {
		t.Fatal("first stroke should match")
	}
	if done := eval.Advance(); done {
		t.Fatal("entry must not complete after position 0 of 2")
	}
	if eval.Pos() != 1 {
		t.Fatalf("pos = %d, want 1", eval.Pos())
	}

	targets := eval.Targets()
	if len(targets) != 1 || targets[0] != mustStroke(t, "KHUR") {
		t.Fatalf("targets at pos 1 = %v", targets)
	}
	if eval.Match(mustStroke(t, "PEUBG")) {
		t.Fatal("first stroke must not match at position 1")
	}
	if !eval.Match(mustStroke(t, "KHUR")) {
		t.Fatal("second stroke should match at position 1")
	}
	if done := eval.Advance(); !done {
		t.Fatal("entry should complete after the final stroke")
	}

	eval.Reset()
	if eval.Pos() != 0 {
		t.Fatalf("pos after reset = %d", eval.Pos())
	}
}

func TestAlternativesOfDifferentLengths(t *testing.T) {
	eval := NewEvaluator(alts(t, "SWR", "AEU/SRE"))
	if got := len(eval.Targets()); got != 2 {
		t.Fatalf("targets at pos 0 = %d, want 2", got)
	}
	if done := eval.Advance(); !done {
		t.Fatal("matching the single-stroke alternative completes the entry")
	}
}

func TestMaxSequenceLen(t *testing.T) {
	eval := NewEvaluator(alts(t, "SWR", "PEUBG/KHUR"))
	if got := eval.MaxSequenceLen(); got != 2 {
		t.Fatalf("max sequence len = %d, want 2", got)
	}
}
