package models

import "time"

// ScoreRecord is one user's live score for one problem. At most one row
// exists per (user, problem); a resubmission overwrites the percentile in
// place and keeps the original submission time and level.
type ScoreRecord struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ProblemID   int64      `json:"problem_id"`
	Percentile  float64    `json:"percentile"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Difficulty  Difficulty `json:"difficulty"`
}

// LeaderboardEntry is one aggregated leaderboard row: a user and the number
// of distinct problems they have solved, ordered most-solved first.
type LeaderboardEntry struct {
	Name   string `json:"name"`
	Solved int    `json:"solved"`
}

// DailyLevelCount is a raw aggregation row: distinct problems a user solved
// on one calendar day at one level.
type DailyLevelCount struct {
	Day        time.Time
	Difficulty Difficulty
	Count      int
}

// ProgressPoint is one day of a user's progress series. Counts are running
// cumulative totals per difficulty, so they never decrease across the series.
type ProgressPoint struct {
	Day    time.Time `json:"day"`
	Easy   int       `json:"easy"`
	Medium int       `json:"medium"`
	Hard   int       `json:"hard"`
}
