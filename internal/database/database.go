package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "leetdaily_user")
	password := getEnv("DB_PASSWORD", "leetdaily_password")
	dbname := getEnv("DB_NAME", "leetdaily")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id   BIGINT PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS problems (
		id         BIGINT PRIMARY KEY,
		title      VARCHAR(255) NOT NULL,
		difficulty INT NOT NULL CHECK (difficulty BETWEEN 1 AND 3)
	);

	CREATE TABLE IF NOT EXISTS daily_problems (
		problem_id BIGINT PRIMARY KEY REFERENCES problems(id),
		difficulty INT NOT NULL CHECK (difficulty BETWEEN 1 AND 3),
		UNIQUE(difficulty)
	);

	CREATE TABLE IF NOT EXISTS score_records (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id),
		problem_id   BIGINT NOT NULL REFERENCES problems(id),
		percentile   DOUBLE PRECISION NOT NULL CHECK (percentile >= 0 AND percentile <= 100),
		submitted_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		difficulty   INT NOT NULL CHECK (difficulty BETWEEN 1 AND 3),
		UNIQUE(user_id, problem_id)
	);

	CREATE INDEX IF NOT EXISTS idx_scores_user ON score_records(user_id);
	CREATE INDEX IF NOT EXISTS idx_scores_user_date ON score_records(user_id, submitted_at);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
