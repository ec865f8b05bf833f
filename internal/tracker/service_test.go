package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leetdaily/bot/internal/catalog"
	"github.com/leetdaily/bot/internal/models"
)

// fakeStorage is an in-memory Storage for deterministic service tests.
type fakeStorage struct {
	users    map[int64]models.User
	problems map[int64]models.Problem
	daily    []models.DailySelection
	scores   []models.ScoreRecord
	nextID   int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:    map[int64]models.User{},
		problems: map[int64]models.Problem{},
	}
}

func (f *fakeStorage) UpsertUser(_ context.Context, user models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeStorage) GetProblem(_ context.Context, problemID int64) (*models.Problem, error) {
	if p, ok := f.problems[problemID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeStorage) ReplaceDailySet(_ context.Context, problems []models.Problem, set []models.DailySelection) error {
	for _, p := range problems {
		if _, exists := f.problems[p.ID]; !exists {
			f.problems[p.ID] = p
		}
	}
	f.daily = append([]models.DailySelection(nil), set...)
	return nil
}

func (f *fakeStorage) GetDailySet(_ context.Context) ([]models.DailySelection, error) {
	return append([]models.DailySelection(nil), f.daily...), nil
}

func (f *fakeStorage) UpsertScore(_ context.Context, record models.ScoreRecord) (*models.ScoreRecord, error) {
	for i := range f.scores {
		if f.scores[i].UserID == record.UserID && f.scores[i].ProblemID == record.ProblemID {
			f.scores[i].Percentile = record.Percentile
			stored := f.scores[i]
			return &stored, nil
		}
	}
	f.nextID++
	record.ID = f.nextID
	f.scores = append(f.scores, record)
	stored := record
	return &stored, nil
}

func (f *fakeStorage) DeleteScore(_ context.Context, userID, problemID int64) error {
	for i := range f.scores {
		if f.scores[i].UserID == userID && f.scores[i].ProblemID == problemID {
			f.scores = append(f.scores[:i], f.scores[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStorage) LeaderboardCounts(_ context.Context) ([]models.LeaderboardEntry, error) {
	counts := map[int64]int{}
	var order []int64
	for _, record := range f.scores {
		if counts[record.UserID] == 0 {
			order = append(order, record.UserID)
		}
		counts[record.UserID]++
	}

	var entries []models.LeaderboardEntry
	for len(counts) > 0 {
		best := int64(0)
		bestCount := -1
		for _, userID := range order {
			c, ok := counts[userID]
			if !ok {
				continue
			}
			if c > bestCount || (c == bestCount && userID < best) {
				best, bestCount = userID, c
			}
		}
		entries = append(entries, models.LeaderboardEntry{Name: f.users[best].Name, Solved: bestCount})
		delete(counts, best)
	}
	return entries, nil
}

func (f *fakeStorage) DailyLevelCounts(_ context.Context, userID int64) ([]models.DailyLevelCount, error) {
	type key struct {
		day   time.Time
		level models.Difficulty
	}
	counts := map[key]map[int64]bool{}
	for _, record := range f.scores {
		if record.UserID != userID {
			continue
		}
		k := key{record.SubmittedAt.UTC().Truncate(24 * time.Hour), record.Difficulty}
		if counts[k] == nil {
			counts[k] = map[int64]bool{}
		}
		counts[k][record.ProblemID] = true
	}

	var rows []models.DailyLevelCount
	for k, problems := range counts {
		rows = append(rows, models.DailyLevelCount{Day: k.day, Difficulty: k.level, Count: len(problems)})
	}
	// Order by day then level, as the SQL does.
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].Day.Before(rows[i].Day) ||
				(rows[j].Day.Equal(rows[i].Day) && rows[j].Difficulty < rows[i].Difficulty) {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}

// fakeCatalog serves canned candidates per level and can fail per level.
type fakeCatalog struct {
	candidates map[models.Difficulty][]catalog.Candidate
	fail       map[models.Difficulty]bool
}

func (f *fakeCatalog) FetchCandidates(_ context.Context, level models.Difficulty) ([]catalog.Candidate, error) {
	if f.fail[level] {
		return nil, fmt.Errorf("catalog down")
	}
	return f.candidates[level], nil
}

func candidate(id int64, title string, level models.Difficulty) catalog.Candidate {
	return catalog.Candidate{ID: id, Title: title, TitleSlug: title, AcceptanceRate: 50, Difficulty: level}
}

func newTestService(store *fakeStorage, source *fakeCatalog) *Service {
	service := NewService(store, source)
	service.SetPicker(func(n int) int { return 0 })
	service.SetClock(func() time.Time {
		return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	})
	return service
}

// seedDaily installs a daily set directly in the fake store.
func seedDaily(store *fakeStorage, problems ...models.Problem) {
	var set []models.DailySelection
	for _, p := range problems {
		store.problems[p.ID] = p
		set = append(set, models.DailySelection{ProblemID: p.ID, Difficulty: p.Difficulty})
	}
	store.daily = set
}

// ── Daily Selection ─────────────────────────────────────

func TestSelectDailyPicksOnePerLevel(t *testing.T) {
	store := newFakeStorage()
	source := &fakeCatalog{candidates: map[models.Difficulty][]catalog.Candidate{
		models.DifficultyEasy:   {candidate(1, "two-sum", models.DifficultyEasy), candidate(9, "palindrome", models.DifficultyEasy)},
		models.DifficultyMedium: {candidate(2, "add-two-numbers", models.DifficultyMedium)},
		models.DifficultyHard:   {candidate(4, "median-arrays", models.DifficultyHard)},
	}}
	service := newTestService(store, source)

	selected, err := service.SelectDaily(context.Background(), models.AllDifficulties())
	if err != nil {
		t.Fatalf("SelectDaily error: %v", err)
	}
	if len(selected) != 3 {
		t.Fatalf("SelectDaily returned %d levels, want 3", len(selected))
	}
	if selected[models.DifficultyEasy].ID != 1 {
		t.Errorf("easy pick = %d, want 1 (picker always chooses index 0)", selected[models.DifficultyEasy].ID)
	}
	if len(store.daily) != 3 {
		t.Errorf("daily set has %d entries, want 3", len(store.daily))
	}
	// Selected problems are registered for later lookup by id alone.
	for _, id := range []int64{1, 2, 4} {
		if _, ok := store.problems[id]; !ok {
			t.Errorf("problem %d was not registered in the catalog table", id)
		}
	}
}

func TestSelectDailyReplacesPriorSet(t *testing.T) {
	store := newFakeStorage()
	source := &fakeCatalog{candidates: map[models.Difficulty][]catalog.Candidate{
		models.DifficultyEasy:   {candidate(1, "two-sum", models.DifficultyEasy)},
		models.DifficultyMedium: {candidate(2, "add-two-numbers", models.DifficultyMedium)},
		models.DifficultyHard:   {candidate(4, "median-arrays", models.DifficultyHard)},
	}}
	service := newTestService(store, source)

	if _, err := service.SelectDaily(context.Background(), models.AllDifficulties()); err != nil {
		t.Fatalf("first SelectDaily error: %v", err)
	}

	source.candidates = map[models.Difficulty][]catalog.Candidate{
		models.DifficultyEasy: {candidate(7, "roman-to-integer", models.DifficultyEasy)},
	}
	if _, err := service.SelectDaily(context.Background(), models.AllDifficulties()); err != nil {
		t.Fatalf("second SelectDaily error: %v", err)
	}

	set, _ := store.GetDailySet(context.Background())
	if len(set) != 1 || set[0].ProblemID != 7 {
		t.Fatalf("daily set after second call = %+v, want only problem 7", set)
	}
}

func TestSelectDailyOmitsEmptyLevels(t *testing.T) {
	store := newFakeStorage()
	source := &fakeCatalog{
		candidates: map[models.Difficulty][]catalog.Candidate{
			models.DifficultyEasy: {candidate(1, "two-sum", models.DifficultyEasy)},
		},
		fail: map[models.Difficulty]bool{models.DifficultyHard: true},
	}
	service := newTestService(store, source)

	selected, err := service.SelectDaily(context.Background(), models.AllDifficulties())
	if err != nil {
		t.Fatalf("SelectDaily error: %v", err)
	}
	if len(selected) != 1 {
		t.Fatalf("SelectDaily returned %d levels, want 1 (medium empty, hard failed)", len(selected))
	}
	if _, ok := selected[models.DifficultyEasy]; !ok {
		t.Error("easy level missing from result")
	}
}

func TestSelectDailyAllFetchesFail(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store, models.Problem{ID: 42, Title: "old", Difficulty: models.DifficultyEasy})
	source := &fakeCatalog{fail: map[models.Difficulty]bool{
		models.DifficultyEasy:   true,
		models.DifficultyMedium: true,
		models.DifficultyHard:   true,
	}}
	service := newTestService(store, source)

	_, err := service.SelectDaily(context.Background(), models.AllDifficulties())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("SelectDaily error = %v, want ErrCatalogUnavailable", err)
	}
	if len(store.daily) != 1 || store.daily[0].ProblemID != 42 {
		t.Errorf("prior daily set was modified on total catalog failure: %+v", store.daily)
	}
}

func TestSelectDailyPartialOutagePreservesSet(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store, models.Problem{ID: 42, Title: "old", Difficulty: models.DifficultyEasy})
	// Easy and medium fail outright, hard answers but has no candidates:
	// there is nothing to publish, so the prior set must survive.
	source := &fakeCatalog{fail: map[models.Difficulty]bool{
		models.DifficultyEasy:   true,
		models.DifficultyMedium: true,
	}}
	service := newTestService(store, source)

	_, err := service.SelectDaily(context.Background(), models.AllDifficulties())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("SelectDaily error = %v, want ErrCatalogUnavailable", err)
	}
	if len(store.daily) != 1 || store.daily[0].ProblemID != 42 {
		t.Errorf("prior daily set was modified on partial catalog failure: %+v", store.daily)
	}
}

func TestSelectDailyDuplicateLevelsCollapse(t *testing.T) {
	store := newFakeStorage()
	source := &fakeCatalog{candidates: map[models.Difficulty][]catalog.Candidate{
		models.DifficultyEasy: {candidate(1, "two-sum", models.DifficultyEasy)},
	}}
	service := newTestService(store, source)

	selected, err := service.SelectDaily(context.Background(),
		[]models.Difficulty{models.DifficultyEasy, models.DifficultyEasy})
	if err != nil {
		t.Fatalf("SelectDaily error: %v", err)
	}
	if len(selected) != 1 || len(store.daily) != 1 {
		t.Errorf("duplicate levels produced %d selections and %d daily rows, want 1 and 1",
			len(selected), len(store.daily))
	}
}

// ── Score Submission ────────────────────────────────────

func TestSubmitScoreRoundsAndUpdates(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store, models.Problem{ID: 42, Title: "two-sum", Difficulty: models.DifficultyEasy})
	service := newTestService(store, &fakeCatalog{})

	record, err := service.SubmitScore(context.Background(), 7, "alex", "easy", "87.65")
	if err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}
	if record.Percentile != 87.7 {
		t.Errorf("stored percentile = %v, want 87.7 (rounded to one decimal)", record.Percentile)
	}
	if record.ProblemID != 42 || record.Difficulty != models.DifficultyEasy {
		t.Errorf("record = %+v, want problem 42 at easy", record)
	}
	if len(store.scores) != 1 {
		t.Fatalf("ledger has %d rows, want 1", len(store.scores))
	}
	firstSubmittedAt := store.scores[0].SubmittedAt

	// Resubmission updates in place: still one row, new percentile,
	// original timestamp untouched.
	record, err = service.SubmitScore(context.Background(), 7, "alex", "easy", "90.0")
	if err != nil {
		t.Fatalf("resubmit error: %v", err)
	}
	if len(store.scores) != 1 {
		t.Fatalf("ledger has %d rows after resubmit, want 1", len(store.scores))
	}
	if record.Percentile != 90.0 {
		t.Errorf("percentile after resubmit = %v, want 90.0", record.Percentile)
	}
	if !store.scores[0].SubmittedAt.Equal(firstSubmittedAt) {
		t.Error("resubmission changed submitted_at")
	}
}

func TestSubmitScoreBySelectorID(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store, models.Problem{ID: 42, Title: "two-sum", Difficulty: models.DifficultyEasy})
	service := newTestService(store, &fakeCatalog{})

	record, err := service.SubmitScore(context.Background(), 7, "alex", "42", "55")
	if err != nil {
		t.Fatalf("SubmitScore by id error: %v", err)
	}
	if record.ProblemID != 42 {
		t.Errorf("record.ProblemID = %d, want 42", record.ProblemID)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store, models.Problem{ID: 42, Title: "two-sum", Difficulty: models.DifficultyEasy})
	service := newTestService(store, &fakeCatalog{})

	tests := []struct {
		name       string
		selector   string
		percentile string
		wantErr    error
	}{
		{"malformed percentile", "easy", "ninety", ErrInvalidInput},
		{"percentile above range", "easy", "101", ErrOutOfRange},
		{"percentile below range", "easy", "-0.1", ErrOutOfRange},
		{"percentile not a number value", "easy", "NaN", ErrOutOfRange},
		{"percentile positive infinity", "easy", "+Inf", ErrOutOfRange},
		{"percentile negative infinity", "easy", "-Inf", ErrOutOfRange},
		{"unknown difficulty keyword", "extreme", "50", ErrInvalidDifficulty},
		{"level not in daily set", "hard", "50", ErrNotTodaysProblem},
		{"problem id not in daily set", "999", "50", ErrNotTodaysProblem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SubmitScore(context.Background(), 7, "alex", tt.selector, tt.percentile)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitScore(%q, %q) error = %v, want %v", tt.selector, tt.percentile, err, tt.wantErr)
			}
		})
	}

	// No validation failure may leave side effects.
	if len(store.scores) != 0 {
		t.Errorf("ledger has %d rows after failed submissions, want 0", len(store.scores))
	}
	if len(store.users) != 0 {
		t.Errorf("users table has %d rows after failed submissions, want 0", len(store.users))
	}
}

func TestSubmitScoreCatalogLookupFault(t *testing.T) {
	store := newFakeStorage()
	// Daily set references a problem that was never registered.
	store.daily = []models.DailySelection{{ProblemID: 42, Difficulty: models.DifficultyEasy}}
	service := newTestService(store, &fakeCatalog{})

	_, err := service.SubmitScore(context.Background(), 7, "alex", "easy", "50")
	if !errors.Is(err, ErrCatalogLookup) {
		t.Fatalf("SubmitScore error = %v, want ErrCatalogLookup", err)
	}
	if len(store.scores) != 0 {
		t.Errorf("ledger has %d rows after integrity fault, want 0", len(store.scores))
	}
}

func TestSubmitScoreBoundaryPercentiles(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store,
		models.Problem{ID: 42, Title: "two-sum", Difficulty: models.DifficultyEasy},
		models.Problem{ID: 50, Title: "pow", Difficulty: models.DifficultyMedium},
	)
	service := newTestService(store, &fakeCatalog{})

	record, err := service.SubmitScore(context.Background(), 7, "alex", "easy", "0")
	if err != nil || record.Percentile != 0 {
		t.Fatalf("SubmitScore(0) = (%+v, %v), want percentile 0", record, err)
	}
	record, err = service.SubmitScore(context.Background(), 7, "alex", "medium", "100")
	if err != nil || record.Percentile != 100 {
		t.Fatalf("SubmitScore(100) = (%+v, %v), want percentile 100", record, err)
	}
}

// ── Score Removal ───────────────────────────────────────

func TestRemoveScore(t *testing.T) {
	store := newFakeStorage()
	seedDaily(store, models.Problem{ID: 42, Title: "two-sum", Difficulty: models.DifficultyEasy})
	service := newTestService(store, &fakeCatalog{})

	if _, err := service.SubmitScore(context.Background(), 7, "alex", "easy", "80"); err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}

	problemID, err := service.RemoveScore(context.Background(), 7, "easy")
	if err != nil {
		t.Fatalf("RemoveScore error: %v", err)
	}
	if problemID != 42 {
		t.Errorf("RemoveScore returned problem %d, want 42", problemID)
	}
	if len(store.scores) != 0 {
		t.Errorf("ledger has %d rows after removal, want 0", len(store.scores))
	}

	// Removing a score that was never submitted is a no-op, not an error.
	if _, err := service.RemoveScore(context.Background(), 7, "easy"); err != nil {
		t.Errorf("second RemoveScore error = %v, want nil", err)
	}
}

func TestRemoveScoreNotToday(t *testing.T) {
	store := newFakeStorage()
	service := newTestService(store, &fakeCatalog{})

	if _, err := service.RemoveScore(context.Background(), 7, "easy"); !errors.Is(err, ErrNotTodaysProblem) {
		t.Fatalf("RemoveScore with empty daily set error = %v, want ErrNotTodaysProblem", err)
	}
	if _, err := service.RemoveScore(context.Background(), 7, "bogus"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("RemoveScore with bad keyword error = %v, want ErrInvalidDifficulty", err)
	}
}

// ── Aggregation ─────────────────────────────────────────

func TestLeaderboardOrdering(t *testing.T) {
	store := newFakeStorage()
	service := newTestService(store, &fakeCatalog{})

	// User A solves 3, user B solves 5, user C solves none.
	store.users[1] = models.User{ID: 1, Name: "A"}
	store.users[2] = models.User{ID: 2, Name: "B"}
	store.users[3] = models.User{ID: 3, Name: "C"}
	for i := int64(0); i < 3; i++ {
		store.scores = append(store.scores, models.ScoreRecord{UserID: 1, ProblemID: 100 + i, Difficulty: models.DifficultyEasy})
	}
	for i := int64(0); i < 5; i++ {
		store.scores = append(store.scores, models.ScoreRecord{UserID: 2, ProblemID: 200 + i, Difficulty: models.DifficultyEasy})
	}

	entries, err := service.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("leaderboard has %d entries, want 2 (zero-score user excluded)", len(entries))
	}
	if entries[0].Name != "B" || entries[0].Solved != 5 {
		t.Errorf("entries[0] = %+v, want B with 5", entries[0])
	}
	if entries[1].Name != "A" || entries[1].Solved != 3 {
		t.Errorf("entries[1] = %+v, want A with 3", entries[1])
	}
}

func TestProgressCumulative(t *testing.T) {
	store := newFakeStorage()
	service := newTestService(store, &fakeCatalog{})

	day := func(offset int) time.Time {
		return time.Date(2026, 3, 1+offset, 10, 30, 0, 0, time.UTC)
	}
	records := []struct {
		problem int64
		at      time.Time
		level   models.Difficulty
	}{
		{1, day(0), models.DifficultyEasy},
		{2, day(0), models.DifficultyMedium},
		{3, day(1), models.DifficultyEasy},
		{4, day(3), models.DifficultyHard},
		{5, day(3), models.DifficultyEasy},
	}
	for _, r := range records {
		store.scores = append(store.scores, models.ScoreRecord{
			UserID: 7, ProblemID: r.problem, SubmittedAt: r.at, Difficulty: r.level,
		})
	}

	series, err := service.Progress(context.Background(), 7)
	if err != nil {
		t.Fatalf("Progress error: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series has %d days, want 3", len(series))
	}

	want := []models.ProgressPoint{
		{Day: day(0).Truncate(24 * time.Hour), Easy: 1, Medium: 1, Hard: 0},
		{Day: day(1).Truncate(24 * time.Hour), Easy: 2, Medium: 1, Hard: 0},
		{Day: day(3).Truncate(24 * time.Hour), Easy: 3, Medium: 1, Hard: 1},
	}
	for i, point := range series {
		if !point.Day.Equal(want[i].Day) || point.Easy != want[i].Easy ||
			point.Medium != want[i].Medium || point.Hard != want[i].Hard {
			t.Errorf("series[%d] = %+v, want %+v", i, point, want[i])
		}
	}

	// Cumulative property: counts never decrease across adjacent days.
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		if cur.Easy < prev.Easy || cur.Medium < prev.Medium || cur.Hard < prev.Hard {
			t.Errorf("series[%d] = %+v decreases from series[%d] = %+v", i, cur, i-1, prev)
		}
	}
}

func TestProgressEmpty(t *testing.T) {
	service := newTestService(newFakeStorage(), &fakeCatalog{})
	series, err := service.Progress(context.Background(), 7)
	if err != nil {
		t.Fatalf("Progress error: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("series for user with no records has %d points, want 0", len(series))
	}
}

// sessionZoneStorage serves canned day rows the way a store backed by a
// non-UTC database session would: midnights in the session's zone.
type sessionZoneStorage struct {
	*fakeStorage
	rows []models.DailyLevelCount
}

func (s *sessionZoneStorage) DailyLevelCounts(_ context.Context, _ int64) ([]models.DailyLevelCount, error) {
	return s.rows, nil
}

func TestProgressSessionTimezoneDays(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	store := &sessionZoneStorage{
		fakeStorage: newFakeStorage(),
		rows: []models.DailyLevelCount{
			{Day: time.Date(2026, 3, 5, 0, 0, 0, 0, sydney), Difficulty: models.DifficultyEasy, Count: 1},
			{Day: time.Date(2026, 3, 6, 0, 0, 0, 0, sydney), Difficulty: models.DifficultyEasy, Count: 1},
		},
	}
	service := NewService(store, &fakeCatalog{})

	series, err := service.Progress(context.Background(), 7)
	if err != nil {
		t.Fatalf("Progress error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("series has %d days, want 2", len(series))
	}
	want := []time.Time{
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	for i, point := range series {
		if !point.Day.Equal(want[i]) {
			t.Errorf("series[%d].Day = %v, want %v (calendar date of the session midnight)", i, point.Day, want[i])
		}
	}
	if series[1].Easy != 2 {
		t.Errorf("series[1].Easy = %d, want 2", series[1].Easy)
	}
}

// ── End to End ──────────────────────────────────────────

func TestSelectThenSubmitFlow(t *testing.T) {
	store := newFakeStorage()
	source := &fakeCatalog{candidates: map[models.Difficulty][]catalog.Candidate{
		models.DifficultyEasy: {candidate(42, "two-sum", models.DifficultyEasy)},
	}}
	service := newTestService(store, source)

	selected, err := service.SelectDaily(context.Background(), []models.Difficulty{models.DifficultyEasy})
	if err != nil {
		t.Fatalf("SelectDaily error: %v", err)
	}
	if selected[models.DifficultyEasy].ID != 42 {
		t.Fatalf("selected easy problem = %d, want 42", selected[models.DifficultyEasy].ID)
	}

	record, err := service.SubmitScore(context.Background(), 7, "alex", "easy", "87.65")
	if err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}
	if record.Percentile != 87.7 || len(store.scores) != 1 {
		t.Fatalf("after submit: percentile=%v rows=%d, want 87.7 and 1", record.Percentile, len(store.scores))
	}

	record, err = service.SubmitScore(context.Background(), 7, "alex", "easy", "90.0")
	if err != nil {
		t.Fatalf("resubmit error: %v", err)
	}
	if record.Percentile != 90.0 || len(store.scores) != 1 {
		t.Fatalf("after resubmit: percentile=%v rows=%d, want 90.0 and 1", record.Percentile, len(store.scores))
	}
}
