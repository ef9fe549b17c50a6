package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	LogLevel  string

	JudiciaryBaseURL      string
	JudiciaryRateLimitRPS int
	JudiciaryTimeoutMs    int
	JudiciaryMaxPages     int
	JudiciaryGroups       []string
	JudiciaryUserAgent    string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "judgments.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "Excel_Files")),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		JudiciaryBaseURL:      getEnv("JUDICIARY_BASE_URL", "https://www.judiciary.gov.bn"),
		JudiciaryRateLimitRPS: getEnvInt("JUDICIARY_RATE_LIMIT_RPS", 2),
		JudiciaryTimeoutMs:    getEnvInt("JUDICIARY_TIMEOUT_MS", 30000),
		JudiciaryMaxPages:     getEnvInt("JUDICIARY_MAX_PAGES", 0),
		JudiciaryGroups:       SplitGroups(getEnv("JUDICIARY_GROUPS", "")),
		JudiciaryUserAgent:    getEnv("JUDICIARY_USER_AGENT", defaultUserAgent),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// SplitGroups parses a "|"-separated list of group strings. Group strings
// use ";#" internally so "|" is free to act as separator.
func SplitGroups(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
