package config

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mauv0809/club-ladder/internal/rating"
)

// DefaultRaceResetCron runs the Race reset at midnight on the first of every month.
const DefaultRaceResetCron = "0 0 1 * *"

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	ratingCfg, err := LoadRating(os.Getenv("RATING_CONFIG"))
	if err != nil {
		log.Fatal("Invalid rating configuration", "error", err)
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		TenantID: os.Getenv("TENANT_ID"),
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		ProjectID:     os.Getenv("GCP_PROJECT"),
		RaceResetCron: getEnvOr("RACE_RESET_CRON", DefaultRaceResetCron),
		Rating:        ratingCfg,
	}
	return cfg
}

func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// LoadRating builds the rating constants by layering defaults, the optional
// YAML file at path, and RATING_ prefixed env vars (RATING_K_FACTOR=24).
func LoadRating(path string) (rating.Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return rating.Config{}, err
		}
	}

	envProvider := env.Provider("RATING_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "rating_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return rating.Config{}, err
	}

	cfg := rating.DefaultConfig()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return rating.Config{}, err
	}

	switch {
	case cfg.KFactor <= 0:
		return rating.Config{}, errors.New("k_factor must be positive")
	case cfg.TournamentMultiplier <= 0:
		return rating.Config{}, errors.New("tournament_multiplier must be positive")
	}
	return cfg, nil
}
