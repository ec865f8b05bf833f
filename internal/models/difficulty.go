package models

import (
	"fmt"
	"strings"
)

// Difficulty is the canonical problem difficulty level. LeetCode numbers
// its levels 1-3 and the database stores the same integers.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "Easy",
	DifficultyMedium: "Medium",
	DifficultyHard:   "Hard",
}

var difficultyKeywords = map[string]Difficulty{
	"easy":   DifficultyEasy,
	"medium": DifficultyMedium,
	"hard":   DifficultyHard,
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyNames[d]
	return ok
}

// ParseDifficulty normalizes an external difficulty keyword ("easy", "Medium",
// "HARD", ...) into the canonical enum. This is the single translation point
// between user-facing text and the stored level.
func ParseDifficulty(keyword string) (Difficulty, bool) {
	d, ok := difficultyKeywords[strings.ToLower(strings.TrimSpace(keyword))]
	return d, ok
}

// AllDifficulties lists the levels in ascending order of hardness.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}
