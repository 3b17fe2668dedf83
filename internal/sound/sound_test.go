package sound

import (
	"math/rand"
	"testing"

	"github.com/dewtone/stenodactylus/internal/steno"
)

func TestTypingBurstOrderAndPan(t *testing.T) {
	union, err := steno.Parse("SWR-F")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rnd := rand.New(rand.NewSource(1))
	burst := TypingBurst(union, rnd)
	if len(burst) != 4 {
		t.Fatalf("burst length = %d, want 4", len(burst))
	}
	prevAt := -1.0
	prevKey := steno.Key(0)
	for i, tr := range burst {
		if tr.AtMs <= prevAt {
			t.Fatalf("transient %d at %.2fms, not after %.2fms", i, tr.AtMs, prevAt)
		}
		if i > 0 && tr.Key <= prevKey {
			t.Fatalf("burst not in steno order: %v after %v", tr.Key.Name(), prevKey.Name())
		}
		if tr.Pan < -1 || tr.Pan > 1 {
			t.Fatalf("pan %f out of range", tr.Pan)
		}
		prevAt, prevKey = tr.AtMs, tr.Key
	}
	if burst[0].Pan >= burst[len(burst)-1].Pan {
		t.Fatal("burst should sweep left to right")
	}
}

func TestTypingBurstEmptyUnion(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	if got := TypingBurst(steno.EmptyStroke, rnd); len(got) != 0 {
		t.Fatalf("burst for empty union = %d transients", len(got))
	}
}

func TestRewardToneProgression(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	prevDecay := 0.0
	for level := 1; level <= MaxToneLevel; level++ {
		tone := RewardTone(level, rnd)
		if len(tone.Partials) != level {
			t.Fatalf("level %d has %d partials", level, len(tone.Partials))
		}
		if tone.Env.Decay <= prevDecay {
			t.Fatalf("level %d decay %.3f did not grow", level, tone.Env.Decay)
		}
		if tone.BaseHz < 256 || tone.BaseHz > 259 {
			t.Fatalf("base frequency %.2f outside 432 Hz tuning of C4", tone.BaseHz)
		}
		prevDecay = tone.Env.Decay
	}

	if tone := RewardTone(99, rnd); len(tone.Partials) != MaxToneLevel {
		t.Fatalf("level clamps at %d, got %d partials", MaxToneLevel, len(tone.Partials))
	}
	if tone := RewardTone(0, rnd); tone.Level != 0 || len(tone.Partials) != 0 {
		t.Fatal("level 0 should be an empty tone")
	}
}
