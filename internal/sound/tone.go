package sound

import "math/rand"

// Partial is one sine component of a reward tone, as a ratio of the
// fundamental.
type Partial struct {
	Ratio float64
	Amp   float64
}

// Envelope is an ADSR shape in seconds.
type Envelope struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
	Dur     float64
}

// Tone describes a reward sound. Level 1 is a bare fundamental with a short
// envelope; each level up enables another partial and stretches the decay,
// topping out at a full bell at level ten.
type Tone struct {
	Level    int
	BaseHz   float64
	Amp      float64
	Pan      float64
	Partials []Partial
	Env      Envelope
}

// MaxToneLevel is the number of partials in the progression.
const MaxToneLevel = 10

var partialTable = []Partial{
	{Ratio: 1.0, Amp: 0.5},
	{Ratio: 2.0, Amp: 0.3},
	{Ratio: 3.0, Amp: 0.2},
	{Ratio: 2.4, Amp: 0.25},
	{Ratio: 4.5, Amp: 0.15},
	{Ratio: 5.0, Amp: 0.12},
	{Ratio: 3.6, Amp: 0.18},
	{Ratio: 6.0, Amp: 0.1},
	{Ratio: 7.2, Amp: 0.08},
	{Ratio: 4.1, Amp: 0.14},
}

// RewardTone builds the descriptor for a reward at the given level. Levels
// below one return an empty tone; the renderer should play nothing for it.
func RewardTone(level int, rnd *rand.Rand) Tone {
	if level < 1 {
		return Tone{}
	}
	if level > MaxToneLevel {
		level = MaxToneLevel
	}

	attack := 0.005
	decay := 0.10 + float64(level)*0.04
	release := 0.08 + float64(level)*0.03

	return Tone{
		Level:    level,
		BaseHz:   baseFreq,
		Amp:      0.12 + float64(level)*0.008,
		Pan:      (rnd.Float64()*2 - 1) * 0.1,
		Partials: partialTable[:level],
		Env: Envelope{
			Attack:  attack,
			Decay:   decay,
			Sustain: 0.1 + float64(level)*0.03,
			Release: release,
			Dur:     attack + decay + release + 0.05,
		},
	}
}
