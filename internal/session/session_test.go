package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/dewtone/stenodactylus/internal/chord"
	"github.com/dewtone/stenodactylus/internal/dict"
	"github.com/dewtone/stenodactylus/internal/steno"
)

func newSession(t *testing.T, sequences ...string) *Session {
	t.Helper()
	s := New(Options{Rand: rand.New(rand.NewSource(7))})
	alternatives := make([][]steno.Stroke, 0, len(sequences))
	for _, seq := range sequences {
		parsed, err := steno.ParseSequence(seq)
		if err != nil {
			t.Fatalf("parse %q: %v", seq, err)
		}
		alternatives = append(alternatives, parsed)
	}
	if err := s.SetEntry(dict.Entry{Word: "test", Alternatives: alternatives}); err != nil {
		t.Fatalf("set entry: %v", err)
	}
	return s
}

func stroke(t *testing.T, notation string) steno.Stroke {
	t.Helper()
	s, err := steno.Parse(notation)
	if err != nil {
		t.Fatalf("parse %q: %v", notation, err)
	}
	return s
}

func play(t *testing.T, s *Session, notation string) *Result {
	t.Helper()
	target := stroke(t, notation)
	keys := target.Keys()
	var last Update
	for _, k := range keys {
		last = s.Handle(chord.Event{Key: k, Pressed: true, At: time.Now()})
		if last.Result != nil {
			t.Fatal("chord completed during presses")
		}
		if last.Frame == nil {
			t.Fatal("frame missing on state change")
		}
	}
	for i, k := range keys {
		last = s.Handle(chord.Event{Key: k, Pressed: false, At: time.Now()})
		if i < len(keys)-1 && last.Result != nil {
			t.Fatal("chord completed before full release")
		}
	}
	if last.Result == nil {
		t.Fatal("no result after full release")
	}
	return last.Result
}

func TestMatchedChordRewardsAndIncrementsStreak(t *testing.T) {
	s := newSession(t, "SWR")

	res := play(t, s, "SWR")
	if !res.Matched {
		t.Fatal("SWR should match")
	}
	if !res.Reward.Rewarded || res.Reward.Level != 1 {
		t.Fatalf("reward = %+v, want Reward(1)", res.Reward)
	}
	if res.Streak != 1 {
		t.Fatalf("streak = %d, want 1", res.Streak)
	}
	if !res.EntryComplete {
		t.Fatal("single-stroke entry should complete")
	}
	if res.Tone == nil || res.Tone.Level != 1 {
		t.Fatal("reward tone descriptor missing")
	}
	if len(res.Typing) != 3 {
		t.Fatalf("typing transients = %d, want 3", len(res.Typing))
	}
}

func TestAlternativeStrokesBothMatch(t *testing.T) {
	s := newSession(t, "SWR", "SWR-F")
	res := play(t, s, "SWR-F")
	if !res.Matched {
		t.Fatal("SWR-F should match the longer alternative exactly")
	}
}

func TestMissResetsStreakAndEmitsNoReward(t *testing.T) {
	s := newSession(t, "ST")
	if res := play(t, s, "ST"); !res.Matched {
		t.Fatal("warmup chord should match")
	}
	if err := s.SetEntry(s.Entry()); err != nil {
		t.Fatalf("reload entry: %v", err)
	}

	res := play(t, s, "SK")
	if res.Matched {
		t.Fatal("SK must not match ST")
	}
	if res.Reward.Rewarded {
		t.Fatalf("reward = %+v, want NoReward", res.Reward)
	}
	if res.Tone != nil {
		t.Fatal("a miss must not carry a reward tone")
	}
	if res.Streak != 0 {
		t.Fatalf("streak = %d, want reset to 0", res.Streak)
	}
	if !res.HasNearest || res.Nearest != stroke(t, "ST") {
		t.Fatalf("nearest = %v, want ST", res.Nearest)
	}
	// Typing feedback is unconditional.
	if len(res.Typing) != 2 {
		t.Fatalf("typing transients = %d, want 2", len(res.Typing))
	}
}

func TestEarlyReleaseIsCompatibleButNotMatched(t *testing.T) {
	s := newSession(t, "SWR")
	res := play(t, s, "SW")
	if res.Matched {
		t.Fatal("strict subset must not match")
	}
	if !res.HasNearest || res.Nearest != stroke(t, "SWR") {
		t.Fatalf("nearest = %v, want the still-compatible SWR", res.Nearest)
	}
}

func TestRewardExclusivity(t *testing.T) {
	s := newSession(t, "SWR")
	for _, notation := range []string{"SWR", "SK"} {
		if err := s.SetEntry(s.Entry()); err != nil {
			t.Fatalf("reload entry: %v", err)
		}
		res := play(t, s, notation)
		if res.Reward.Rewarded != res.Matched {
			t.Fatalf("matched=%v but rewarded=%v", res.Matched, res.Reward.Rewarded)
		}
		if !res.Reward.Rewarded && res.Reward.Level != 0 {
			t.Fatalf("NoReward must carry no level, got %d", res.Reward.Level)
		}
	}
}

func TestMultiStrokeEntryProgress(t *testing.T) {
	s := newSession(t, "PEUBG/KHUR")

	res := play(t, s, "PEUBG")
	if !res.Matched {
		t.Fatal("first stroke should match")
	}
	if res.EntryComplete {
		t.Fatal("entry must not complete at position 0")
	}
	if res.Position != 1 {
		t.Fatalf("position = %d, want 1", res.Position)
	}

	res = play(t, s, "KHUR")
	if !res.Matched || !res.EntryComplete {
		t.Fatalf("final stroke: matched=%v complete=%v", res.Matched, res.EntryComplete)
	}
	if res.Streak != 2 {
		t.Fatalf("streak = %d, want 2", res.Streak)
	}
}

func TestMissKeepsPosition(t *testing.T) {
	s := newSession(t, "PEUBG/KHUR")
	if res := play(t, s, "PEUBG"); !res.Matched {
		t.Fatal("first stroke should match")
	}
	res := play(t, s, "SK")
	if res.Matched {
		t.Fatal("SK must not match KHUR")
	}
	if res.Position != 1 {
		t.Fatalf("position = %d after miss, want 1 (no advance, no reset)", res.Position)
	}
}

func TestEntrySwapBlockedMidChord(t *testing.T) {
	s := newSession(t, "SWR")
	s.Handle(chord.Event{Key: stroke(t, "S").Keys()[0], Pressed: true, At: time.Now()})
	if err := s.SetEntry(dict.Entry{Word: "other"}); err == nil {
		t.Fatal("entry swap must be rejected while a chord is active")
	}
}

func TestDriftKeysInvisibleToMatching(t *testing.T) {
	s := newSession(t, "SWR")

	u := s.Handle(chord.Event{Key: steno.DriftUpper, Pressed: true, At: time.Now()})
	if !u.DriftUpper {
		t.Fatal("drift indicator should report the press")
	}
	if u.Result != nil {
		t.Fatal("drift press must not complete anything")
	}

	res := play(t, s, "SWR")
	if !res.Matched {
		t.Fatal("chord with drift key held should still match")
	}
	if res.Union != stroke(t, "SWR") {
		t.Fatalf("union = %v, drift leaked in", res.Union)
	}
}
