package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/leetdaily/bot/internal/models"
)

// Config carries everything main needs to wire the process. Database
// settings stay in the database package, which reads its own env vars.
type Config struct {
	DiscordToken  string
	CommandPrefix string

	LeetcodeSession string

	// Difficulty levels a daily roll requests by default.
	DailyDifficulties []models.Difficulty

	HTTPPort string

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
}

// Load reads an optional .env file, then the environment.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return Config{
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		CommandPrefix:     getEnv("COMMAND_PREFIX", "!"),
		LeetcodeSession:   os.Getenv("LEETCODE_SESSION"),
		DailyDifficulties: parseDifficulties(getEnv("DAILY_DIFFICULTIES", "easy,medium,hard")),
		HTTPPort:          getEnv("PORT", "8080"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getEnv("JWT_SECRET", "leetdaily-staging-signing-key-2026"),
	}
}

func parseDifficulties(value string) []models.Difficulty {
	var levels []models.Difficulty
	seen := map[models.Difficulty]bool{}
	for _, keyword := range strings.Split(value, ",") {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		level, ok := models.ParseDifficulty(keyword)
		if !ok {
			log.Printf("Config: ignoring unknown difficulty %q in DAILY_DIFFICULTIES", keyword)
			continue
		}
		if !seen[level] {
			seen[level] = true
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		levels = models.AllDifficulties()
	}
	return levels
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
