package main

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/mauv0809/club-ladder/internal/match"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/mauv0809/club-ladder/internal/rating"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "ladder.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
		"SEED_TENANT":       "demo-club",
		"SEED_MATCHES":      "200",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

var demoPlayers = []club.PlayerInfo{
	{ID: "seed-ana", Name: "Ana Ruiz"},
	{ID: "seed-ben", Name: "Ben Okafor"},
	{ID: "seed-chloe", Name: "Chloe Martin"},
	{ID: "seed-dev", Name: "Dev Patel"},
	{ID: "seed-elin", Name: "Elin Berg"},
	{ID: "seed-farid", Name: "Farid Haddad"},
	{ID: "seed-gia", Name: "Gia Rossi"},
	{ID: "seed-hugo", Name: "Hugo Lefevre"},
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	numMatches, err := strconv.Atoi(cfg["SEED_MATCHES"])
	if err != nil || numMatches <= 0 {
		log.Fatalf("SEED_MATCHES must be a positive number, got %q", cfg["SEED_MATCHES"])
	}
	tenantID := cfg["SEED_TENANT"]

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	players := club.New(db)
	if err := players.UpsertPlayers(ctx, tenantID, demoPlayers); err != nil {
		log.Fatalf("Failed to insert demo players: %s", err)
	}
	log.Info("Ensured demo players exist.", "tenantID", tenantID, "count", len(demoPlayers))

	// The seeder has no scrape endpoint, so metrics go to a throwaway mock.
	m := metrics.NewMock()
	proc := processor.New(ranking.New(db), rating.NewCalculator(rating.DefaultConfig()), m)
	recorder := processor.NewRecorder(match.New(db), proc, players, m)

	// Stronger players (lower index) win more often so the ladder spreads out.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	batchID := uuid.NewString()
	startTime := time.Now()
	failed := 0
	for i := 0; i < numMatches; i++ {
		a, b := rng.Intn(len(demoPlayers)), rng.Intn(len(demoPlayers)-1)
		if b >= a {
			b++
		}
		if a > b && rng.Float64() < 0.65 {
			a, b = b, a
		}
		_, err := recorder.RecordResult(ctx, processor.RecordInput{
			TenantID:     tenantID,
			WinnerID:     demoPlayers[a].ID,
			LoserID:      demoPlayers[b].ID,
			Score:        "6-4 6-3",
			IsTournament: rng.Intn(10) == 0,
			IsOffPeak:    rng.Intn(3) == 0,
			Metadata:     map[string]string{"source": "seeder", "batch": batchID},
		})
		if err != nil {
			failed++
			log.Error("Failed to record seeded match", "error", err)
			continue
		}
		if (i+1)%50 == 0 {
			log.Info("Replayed matches", "completed", i+1, "total", numMatches)
		}
	}

	log.Info("Seeding finished.", "batch", batchID, "matches", numMatches-failed, "failed", failed, "duration", time.Since(startTime))
}
