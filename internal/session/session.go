// Package session runs one practice session: it folds key transitions into
// chords, evaluates them against the current entry, and decides rewards.
// The whole path is a synchronous reducer owned by a single caller; rendering
// and audio read the emitted snapshots, never live state.
package session

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dewtone/stenodactylus/internal/chord"
	"github.com/dewtone/stenodactylus/internal/dict"
	"github.com/dewtone/stenodactylus/internal/reward"
	"github.com/dewtone/stenodactylus/internal/sound"
	"github.com/dewtone/stenodactylus/internal/steno"
)

// Result is the decision record for one completed chord.
type Result struct {
	Union   steno.Stroke
	Matched bool

	// Nearest annotates a miss with the closest candidate stroke.
	Nearest    steno.Stroke
	HasNearest bool

	// Position is the stroke position after the decision; EntryComplete
	// signals that the final position of the entry was matched.
	Position      int
	EntryComplete bool

	Streak int
	Reward reward.Decision

	// Typing transients fire for every chord, matched or not. Tone is set
	// only alongside a reward.
	Typing []sound.Transient
	Tone   *sound.Tone

	Started time.Time
	Ended   time.Time
}

// Update is one emitted snapshot. Frame is present whenever the visible
// keyboard state changed; Result only when a chord completed.
type Update struct {
	Frame      *chord.Frame
	DriftUpper bool
	DriftLower bool
	Result     *Result
}

// Options configure a session.
type Options struct {
	// Level overrides the streak-to-reward curve. Nil uses the default
	// saturating clamp.
	Level reward.LevelFunc
	// Logger receives transport anomaly reports. Nil discards them.
	Logger *slog.Logger
	// Rand drives sound descriptor variation. Nil seeds from the clock.
	Rand *rand.Rand
}

// Session owns the ingestion path state for one practice run.
type Session struct {
	acc    *chord.Accumulator
	eval   *chord.Evaluator
	streak *reward.Streak
	entry  dict.Entry
	rnd    *rand.Rand
	log    *slog.Logger
}

// New returns an idle session with no entry loaded.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		acc:    chord.NewAccumulator(log),
		eval:   chord.NewEvaluator(nil),
		streak: reward.NewStreak(opts.Level),
		rnd:    rnd,
		log:    log,
	}
}

// SetEntry swaps in the next practice entry. A swap is only legal while no
// chord is in progress; the streak carries across entries.
func (s *Session) SetEntry(e dict.Entry) error {
	if s.acc.Active() {
		return fmt.Errorf("cannot change entry while a chord is in progress")
	}
	s.entry = e
	s.eval = chord.NewEvaluator(e.Alternatives)
	return nil
}

// Entry returns the active practice entry.
func (s *Session) Entry() dict.Entry { return s.entry }

// Position returns the active stroke position within the entry.
func (s *Session) Position() int { return s.eval.Pos() }

// MaxPositions returns the longest alternative's stroke count.
func (s *Session) MaxPositions() int { return s.eval.MaxSequenceLen() }

// Streak returns the current consecutive-match count.
func (s *Session) Streak() int { return s.streak.Count() }

// Frame classifies the keyboard for the current in-progress state.
func (s *Session) Frame() chord.Frame {
	union := s.acc.Union()
	return chord.Classify(union, s.acc.Pressed(), s.eval.Compatible(union))
}

// Handle applies one key transition and returns the resulting snapshot.
// It never blocks and never fails; malformed events are reported through
// the logger and absorbed.
func (s *Session) Handle(e chord.Event) Update {
	completed, done := s.acc.OnEvent(e)

	upper, lower := s.acc.DriftHeld()
	update := Update{DriftUpper: upper, DriftLower: lower}

	if !done {
		frame := s.Frame()
		update.Frame = &frame
		return update
	}

	if completed.Union.Empty() {
		// Unreachable under correct event delivery; guarded anyway.
		s.log.Warn("chord completed with empty union")
		frame := s.Frame()
		update.Frame = &frame
		return update
	}

	update.Result = s.decide(completed)
	frame := s.Frame()
	update.Frame = &frame
	return update
}

func (s *Session) decide(completed chord.Completed) *Result {
	res := &Result{
		Union:   completed.Union,
		Started: completed.Started,
		Ended:   completed.Ended,
		Typing:  sound.TypingBurst(completed.Union, s.rnd),
	}

	res.Matched = s.eval.Match(completed.Union)
	if res.Matched {
		res.Reward = s.streak.Hit()
		tone := sound.RewardTone(res.Reward.Level, s.rnd)
		res.Tone = &tone
		res.EntryComplete = s.eval.Advance()
	} else {
		res.Nearest, res.HasNearest = s.nearestFor(completed.Union)
		res.Reward = s.streak.Miss()
	}

	res.Streak = s.streak.Count()
	res.Position = s.eval.Pos()
	return res
}

// nearestFor picks the annotation stroke for a miss: the tightest still-
// compatible candidate when one exists (released too early), otherwise the
// greatest-overlap candidate.
func (s *Session) nearestFor(union steno.Stroke) (steno.Stroke, bool) {
	compatible := s.eval.Compatible(union)
	if len(compatible) == 0 {
		return s.eval.Nearest(union)
	}
	best := compatible[0]
	for _, c := range compatible[1:] {
		if c.Len() < best.Len() {
			best = c
		}
	}
	return best, true
}
