package reward

import "testing"

func TestClampLevelMonotonicSaturating(t *testing.T) {
	level := ClampLevel(10)
	prev := 0
	for count := 1; count <= 30; count++ {
		got := level(count)
		if got < prev {
			t.Fatalf("level(%d) = %d, decreased from %d", count, got, prev)
		}
		if got > 10 {
			t.Fatalf("level(%d) = %d, exceeds maximum", count, got)
		}
		prev = got
	}
	if level(30) != 10 {
		t.Fatalf("level(30) = %d, want saturation at 10", level(30))
	}
}

func TestStreakHitAndMiss(t *testing.T) {
	s := NewStreak(nil)

	d := s.Hit()
	if !d.Rewarded || d.Level != 1 {
		t.Fatalf("first hit = %+v, want Reward(1)", d)
	}
	if s.Count() != 1 {
		t.Fatalf("count = %d, want 1", s.Count())
	}

	d = s.Hit()
	if !d.Rewarded || d.Level != 2 {
		t.Fatalf("second hit = %+v, want Reward(2)", d)
	}

	d = s.Miss()
	if d.Rewarded {
		t.Fatalf("miss = %+v, want NoReward", d)
	}
	if s.Count() != 0 {
		t.Fatalf("count after miss = %d, want 0", s.Count())
	}

	// NoReward is not Reward(0): the Rewarded flag distinguishes them.
	if (Decision{Rewarded: true, Level: 0}) == NoReward {
		t.Fatal("Reward(0) must differ from NoReward")
	}
}

func TestCustomCurve(t *testing.T) {
	s := NewStreak(func(count int) int {
		if count >= 4 {
			return 2
		}
		return 1
	})
	for i := 0; i < 3; i++ {
		if d := s.Hit(); d.Level != 1 {
			t.Fatalf("hit %d level = %d, want 1", i+1, d.Level)
		}
	}
	if d := s.Hit(); d.Level != 2 {
		t.Fatalf("fourth hit level = %d, want 2", d.Level)
	}
}
