package models

// Problem is reference data about a catalog problem. Rows are inserted
// lazily when a problem is first selected or scored and are immutable
// after that: the table is a lookup keyed by the catalog id.
type Problem struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
}

// ProblemDescriptor is the full shape handed back from a daily selection,
// including presentation-only fields that are not persisted.
type ProblemDescriptor struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	AcceptanceRate float64    `json:"acceptance_rate"`
	Difficulty     Difficulty `json:"difficulty"`
}

// DailySelection is one entry of the current daily problem set. The set
// holds at most one entry per difficulty level and only the current
// generation is ever queryable.
type DailySelection struct {
	ProblemID  int64      `json:"problem_id"`
	Difficulty Difficulty `json:"difficulty"`
}
