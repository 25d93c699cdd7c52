package domain

import "fmt"

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels lists all levels in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// ParseLevel validates a level string.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Rank returns the 0-based position of the level, A1 first.
func (l Level) Rank() int {
	for i, x := range Levels {
		if x == l {
			return i
		}
	}
	return -1
}

// MinBankSize returns the built-in minimum option-bank size for the level.
func (l Level) MinBankSize() int {
	switch l {
	case LevelA1, LevelA2:
		return 3
	case LevelB1, LevelB2:
		return 4
	default:
		return 5
	}
}

// MaxBlanks returns how many blank markers a gap-fill prompt may carry
// at this level: one below B2, two from B2 up.
func (l Level) MaxBlanks() int {
	if l.Rank() >= LevelB2.Rank() {
		return 2
	}
	return 1
}
