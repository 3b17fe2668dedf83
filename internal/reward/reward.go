// Package reward tracks match streaks and picks reward levels.
package reward

// LevelFunc maps a streak count to a reward level. Implementations must be
// monotonically non-decreasing and saturate at a fixed maximum; the exact
// curve is tuning, not contract.
type LevelFunc func(count int) int

// DefaultMaxLevel matches the ten-step reward tone progression.
const DefaultMaxLevel = 10

// ClampLevel returns the identity curve saturating at max.
func ClampLevel(max int) LevelFunc {
	if max < 1 {
		max = 1
	}
	return func(count int) int {
		if count < 1 {
			return 0
		}
		if count > max {
			return max
		}
		return count
	}
}

// Decision is the outcome of one completed chord. NoReward is silence, which
// is deliberately distinct from a reward of level zero.
type Decision struct {
	Rewarded bool
	Level    int
}

// NoReward is the decision for a missed chord.
var NoReward = Decision{}

// Streak counts consecutive matched chords.
type Streak struct {
	count int
	level LevelFunc
}

// NewStreak returns a streak using the given curve, or the default clamp
// when nil.
func NewStreak(level LevelFunc) *Streak {
	if level == nil {
		level = ClampLevel(DefaultMaxLevel)
	}
	return &Streak{level: level}
}

// Count returns the current streak length.
func (s *Streak) Count() int { return s.count }

// Hit records a matched chord and returns the reward decision for it.
func (s *Streak) Hit() Decision {
	s.count++
	return Decision{Rewarded: true, Level: s.level(s.count)}
}

// Miss records a non-matching chord, resetting the streak.
func (s *Streak) Miss() Decision {
	s.count = 0
	return NoReward
}
