package xp

import "math"

// State is XP progress toward the next level. TotalXP holds only the XP
// accumulated within the current level; it resets to the remainder on
// every level-up.
type State struct {
	TotalXP float64
	Level   int
}

// Threshold returns the XP required to advance from level to level+1.
// The policy is linear: 100 XP per current level.
func Threshold(level int) float64 {
	if level < 1 {
		level = 1
	}
	return 100 * float64(level)
}

// Apply adds amount to the state and rolls it into level-ups while the
// accumulated XP meets the current threshold. A single large award can
// span several levels. Amounts <= 0 leave the state untouched.
func Apply(s State, amount float64) (State, int) {
	if s.Level < 1 {
		s.Level = 1
	}
	if amount <= 0 {
		return s, 0
	}

	s.TotalXP += amount
	gained := 0
	for s.TotalXP >= Threshold(s.Level) {
		s.TotalXP -= Threshold(s.Level)
		s.Level++
		gained++
	}
	return s, gained
}

// ToNext returns the threshold for the state's current level.
func (s State) ToNext() float64 {
	return Threshold(s.Level)
}

// DisplayXP is the rounded XP value shown to the user. Level comparisons
// always use the unrounded TotalXP.
func (s State) DisplayXP() int {
	return int(math.Round(s.TotalXP))
}
