package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/leetdaily/bot/internal/models"
)

// Store is the postgres implementation of Storage over the four relations:
// users, problems, daily_problems and score_records.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Users & Problems ────────────────────────────────────

func (s *Store) UpsertUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		user.ID, user.Name,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetProblem returns nil without error when the problem is not registered.
func (s *Store) GetProblem(ctx context.Context, problemID int64) (*models.Problem, error) {
	var p models.Problem
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, difficulty FROM problems WHERE id = $1`,
		problemID,
	).Scan(&p.ID, &p.Title, &p.Difficulty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get problem: %w", err)
	}
	return &p, nil
}

// ── Daily Problem Set ───────────────────────────────────

// ReplaceDailySet registers the given problems (insert-if-absent, rows are
// immutable once stored) and swaps the daily set for the given entries in
// one transaction. Readers never observe a partially cleared set.
func (s *Store) ReplaceDailySet(ctx context.Context, problems []models.Problem, set []models.DailySelection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range problems {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO problems (id, title, difficulty) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Title, p.Difficulty,
		); err != nil {
			return fmt.Errorf("register problem: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_problems`); err != nil {
		return fmt.Errorf("clear daily set: %w", err)
	}

	for _, entry := range set {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO daily_problems (problem_id, difficulty) VALUES ($1, $2)`,
			entry.ProblemID, entry.Difficulty,
		); err != nil {
			return fmt.Errorf("insert daily entry: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetDailySet(ctx context.Context) ([]models.DailySelection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT problem_id, difficulty FROM daily_problems ORDER BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("get daily set: %w", err)
	}
	defer rows.Close()

	var set []models.DailySelection
	for rows.Next() {
		var entry models.DailySelection
		if err := rows.Scan(&entry.ProblemID, &entry.Difficulty); err != nil {
			return nil, fmt.Errorf("scan daily entry: %w", err)
		}
		set = append(set, entry)
	}
	return set, rows.Err()
}

// ── Score Records ───────────────────────────────────────

// UpsertScore inserts a score record, or, when a live record already exists
// for the (user, problem) pair, overwrites only its percentile. The unique
// key guards the insert so concurrent submissions cannot duplicate the row.
func (s *Store) UpsertScore(ctx context.Context, record models.ScoreRecord) (*models.ScoreRecord, error) {
	var stored models.ScoreRecord
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO score_records (user_id, problem_id, percentile, submitted_at, difficulty)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, problem_id)
		 DO UPDATE SET percentile = EXCLUDED.percentile
		 RETURNING id, user_id, problem_id, percentile, submitted_at, difficulty`,
		record.UserID, record.ProblemID, record.Percentile, record.SubmittedAt, record.Difficulty,
	).Scan(&stored.ID, &stored.UserID, &stored.ProblemID, &stored.Percentile,
		&stored.SubmittedAt, &stored.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}
	return &stored, nil
}

// DeleteScore removes the live record for the pair. Deleting a record that
// does not exist is a no-op.
func (s *Store) DeleteScore(ctx context.Context, userID, problemID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM score_records WHERE user_id = $1 AND problem_id = $2`,
		userID, problemID,
	)
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}

// ── Aggregation ─────────────────────────────────────────

// LeaderboardCounts returns solved counts per user, most solved first.
// Live records are unique per (user, problem), so counting rows counts
// distinct problems. Users with no records have no rows to aggregate and
// are naturally excluded.
func (s *Store) LeaderboardCounts(ctx context.Context) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.name, COUNT(*) AS solved
		 FROM score_records r
		 INNER JOIN users u ON u.id = r.user_id
		 GROUP BY u.id, u.name
		 ORDER BY solved DESC, u.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.Solved); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DailyLevelCounts returns, per calendar day and difficulty, the number of
// distinct problems the user solved that day, ordered by day ascending.
func (s *Store) DailyLevelCounts(ctx context.Context, userID int64) ([]models.DailyLevelCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date_trunc('day', submitted_at) AS day, difficulty,
		        COUNT(DISTINCT problem_id) AS solved
		 FROM score_records
		 WHERE user_id = $1
		 GROUP BY day, difficulty
		 ORDER BY day ASC, difficulty ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var counts []models.DailyLevelCount
	for rows.Next() {
		var c models.DailyLevelCount
		if err := rows.Scan(&c.Day, &c.Difficulty, &c.Count); err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
