package tracker

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/leetdaily/bot/internal/catalog"
	"github.com/leetdaily/bot/internal/models"
)

// Storage is the persistence surface the service depends on. The postgres
// Store implements it; tests substitute an in-memory fake.
type Storage interface {
	UpsertUser(ctx context.Context, user models.User) error
	GetProblem(ctx context.Context, problemID int64) (*models.Problem, error)
	ReplaceDailySet(ctx context.Context, problems []models.Problem, set []models.DailySelection) error
	GetDailySet(ctx context.Context) ([]models.DailySelection, error)
	UpsertScore(ctx context.Context, record models.ScoreRecord) (*models.ScoreRecord, error)
	DeleteScore(ctx context.Context, userID, problemID int64) error
	LeaderboardCounts(ctx context.Context) ([]models.LeaderboardEntry, error)
	DailyLevelCounts(ctx context.Context, userID int64) ([]models.DailyLevelCount, error)
}

// CandidateSource supplies selection candidates from the external catalog.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, level models.Difficulty) ([]catalog.Candidate, error)
}

// Picker chooses an index in [0, n). Selection is randomized in production;
// tests inject a deterministic picker.
type Picker func(n int) int

type Service struct {
	store   Storage
	catalog CandidateSource
	pick    Picker
	now     func() time.Time
}

func NewService(store Storage, source CandidateSource) *Service {
	return &Service{
		store:   store,
		catalog: source,
		pick:    rand.Intn,
		now:     time.Now,
	}
}

// SetPicker overrides the random-choice strategy.
func (s *Service) SetPicker(pick Picker) {
	s.pick = pick
}

// SetClock overrides the submission timestamp source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ── Daily Selection ─────────────────────────────────────

// SelectDaily picks one not-yet-solved free problem per requested level and
// publishes the result as the new daily set, fully replacing the previous
// one. A level whose catalog fetch fails or returns no candidates is
// omitted from the result; a day may have fewer problems than requested.
// ErrCatalogUnavailable is returned, with no state change, when fetch
// failures leave nothing to publish.
func (s *Service) SelectDaily(ctx context.Context, levels []models.Difficulty) (map[models.Difficulty]models.ProblemDescriptor, error) {
	requested := make(map[models.Difficulty]bool, len(levels))
	for _, level := range levels {
		if level.Valid() {
			requested[level] = true
		}
	}
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: no difficulty levels requested", ErrInvalidInput)
	}

	selected := make(map[models.Difficulty]models.ProblemDescriptor)
	var problems []models.Problem
	var set []models.DailySelection
	fetchErrors := 0

	// Iterate in ascending level order so the stored set is deterministic
	// in shape even though the picks are random.
	for _, level := range models.AllDifficulties() {
		if !requested[level] {
			continue
		}

		candidates, err := s.catalog.FetchCandidates(ctx, level)
		if err != nil {
			log.Printf("Daily selection: catalog fetch failed for %s: %v", level, err)
			fetchErrors++
			continue
		}
		if len(candidates) == 0 {
			log.Printf("Daily selection: no unsolved free candidates for %s, omitting level", level)
			continue
		}

		chosen := candidates[s.pick(len(candidates))]
		selected[level] = models.ProblemDescriptor{
			ID:             chosen.ID,
			Title:          chosen.Title,
			URL:            chosen.URL(),
			AcceptanceRate: chosen.AcceptanceRate,
			Difficulty:     level,
		}
		problems = append(problems, models.Problem{
			ID:         chosen.ID,
			Title:      chosen.Title,
			Difficulty: level,
		})
		set = append(set, models.DailySelection{ProblemID: chosen.ID, Difficulty: level})
	}

	// A fetch failure with nothing selected leaves the prior set in
	// place, whether every level failed or the surviving levels simply
	// had no candidates. Replacing with an empty set is reserved for
	// days when the catalog answered for every level.
	if fetchErrors > 0 && len(set) == 0 {
		return nil, fmt.Errorf("%w: %d of %d catalog fetches failed and no level yielded a pick",
			ErrCatalogUnavailable, fetchErrors, len(requested))
	}

	if err := s.store.ReplaceDailySet(ctx, problems, set); err != nil {
		return nil, fmt.Errorf("replace daily set: %w", err)
	}

	return selected, nil
}

// DailySet returns the current generation of the daily problem set.
func (s *Service) DailySet(ctx context.Context) ([]models.DailySelection, error) {
	return s.store.GetDailySet(ctx)
}

// DailyDescriptors rebuilds descriptors for the current daily set from the
// catalog table. Presentation-only fields that are not persisted (url,
// acceptance rate) are left zero.
func (s *Service) DailyDescriptors(ctx context.Context) (map[models.Difficulty]models.ProblemDescriptor, error) {
	set, err := s.store.GetDailySet(ctx)
	if err != nil {
		return nil, err
	}

	descriptors := make(map[models.Difficulty]models.ProblemDescriptor, len(set))
	for _, entry := range set {
		problem, err := s.store.GetProblem(ctx, entry.ProblemID)
		if err != nil {
			return nil, err
		}
		if problem == nil {
			log.Printf("Data integrity: daily problem %d has no catalog row", entry.ProblemID)
			continue
		}
		descriptors[entry.Difficulty] = models.ProblemDescriptor{
			ID:         problem.ID,
			Title:      problem.Title,
			Difficulty: problem.Difficulty,
		}
	}
	return descriptors, nil
}

// ── Score Submission ────────────────────────────────────

// SubmitScore validates and records a user's percentile for one of today's
// problems. The selector is either an explicit problem id or a difficulty
// keyword. Validation is ordered and fails fast; nothing is written unless
// every check passes. Resubmitting for the same problem overwrites the
// stored percentile and keeps the original timestamp and level.
func (s *Service) SubmitScore(ctx context.Context, userID int64, displayName, selector, percentile string) (*models.ScoreRecord, error) {
	value, err := strconv.ParseFloat(percentile, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: percentile %q is not a number", ErrInvalidInput, percentile)
	}
	// ParseFloat accepts "NaN", and every comparison with NaN is false,
	// so the range check alone would let it through.
	if math.IsNaN(value) || value < 0 || value > 100 {
		return nil, fmt.Errorf("%w: got %v", ErrOutOfRange, value)
	}
	rounded := math.Round(value*10) / 10

	problemID, err := s.resolveDailyProblem(ctx, selector)
	if err != nil {
		return nil, err
	}

	problem, err := s.store.GetProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		// The daily set referenced a problem that was never registered.
		log.Printf("Data integrity: daily problem %d has no catalog row", problemID)
		return nil, fmt.Errorf("%w: problem %d", ErrCatalogLookup, problemID)
	}

	if err := s.store.UpsertUser(ctx, models.User{ID: userID, Name: displayName}); err != nil {
		return nil, err
	}

	return s.store.UpsertScore(ctx, models.ScoreRecord{
		UserID:      userID,
		ProblemID:   problemID,
		Percentile:  rounded,
		SubmittedAt: s.now(),
		Difficulty:  problem.Difficulty,
	})
}

// RemoveScore deletes the caller's score for one of today's problems.
// Removing a score that was never submitted is a no-op. The resolved
// problem id is returned for confirmation messaging.
func (s *Service) RemoveScore(ctx context.Context, userID int64, selector string) (int64, error) {
	problemID, err := s.resolveDailyProblem(ctx, selector)
	if err != nil {
		return 0, err
	}
	if err := s.store.DeleteScore(ctx, userID, problemID); err != nil {
		return 0, err
	}
	return problemID, nil
}

// resolveDailyProblem maps a selector (problem id or difficulty keyword)
// to an entry of the current daily set.
func (s *Service) resolveDailyProblem(ctx context.Context, selector string) (int64, error) {
	set, err := s.store.GetDailySet(ctx)
	if err != nil {
		return 0, err
	}

	if id, err := strconv.ParseInt(selector, 10, 64); err == nil {
		for _, entry := range set {
			if entry.ProblemID == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("%w: problem %d", ErrNotTodaysProblem, id)
	}

	level, ok := models.ParseDifficulty(selector)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, selector)
	}
	for _, entry := range set {
		if entry.Difficulty == level {
			return entry.ProblemID, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s problem today", ErrNotTodaysProblem, level)
}

// ── Aggregation ─────────────────────────────────────────

// Leaderboard returns each active user's distinct solved count, most
// solved first. Users who never submitted a score are excluded.
func (s *Service) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.store.LeaderboardCounts(ctx)
}

// Progress returns the user's day-ordered series of cumulative solved
// counts per difficulty. Each day carries forward the totals of the days
// before it, so counts never decrease across the series.
func (s *Service) Progress(ctx context.Context, userID int64) ([]models.ProgressPoint, error) {
	rows, err := s.store.DailyLevelCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	var series []models.ProgressPoint
	totals := map[models.Difficulty]int{}
	for _, row := range rows {
		totals[row.Difficulty] += row.Count

		// date_trunc already cut the time of day; the value is midnight
		// in the session's zone. Rebuild from the calendar date so a
		// non-UTC session cannot shift a day boundary.
		y, m, d := row.Day.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		point := models.ProgressPoint{
			Day:    day,
			Easy:   totals[models.DifficultyEasy],
			Medium: totals[models.DifficultyMedium],
			Hard:   totals[models.DifficultyHard],
		}
		if n := len(series); n > 0 && series[n-1].Day.Equal(day) {
			series[n-1] = point
		} else {
			series = append(series, point)
		}
	}
	return series, nil
}
