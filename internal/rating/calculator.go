// Package rating computes ELO and Race point deltas. It performs no I/O.
package rating

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultKFactor              = 32
	DefaultInitialElo           = 1200
	DefaultBaseRacePoints       = 10
	DefaultWinBonus             = 15
	DefaultOffPeakBonus         = 5
	DefaultChallengeBonus       = 20
	DefaultTournamentMultiplier = 2.5
)

// DefaultConfig returns the standard club rating constants.
func DefaultConfig() Config {
	return Config{
		KFactor:              DefaultKFactor,
		InitialElo:           DefaultInitialElo,
		BaseRacePoints:       DefaultBaseRacePoints,
		WinBonus:             DefaultWinBonus,
		OffPeakBonus:         DefaultOffPeakBonus,
		ChallengeBonus:       DefaultChallengeBonus,
		TournamentMultiplier: DefaultTournamentMultiplier,
	}
}

// Calculator applies a Config to match outcomes.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator for the given configuration.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Config returns the constants the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Expectation is the expected score of a player rated self against one rated other.
func Expectation(self, other int) float64 {
	return 1 / (1 + math.Pow(10, float64(other-self)/400))
}

// EloUpdate computes the rating change for both players from their pre-match ratings.
func (c *Calculator) EloUpdate(winnerElo, loserElo int) EloResult {
	k := c.cfg.KFactor
	return EloResult{
		WinnerGain: int(math.Round(k * (1 - Expectation(winnerElo, loserElo)))),
		LoserGain:  int(math.Round(k * (0 - Expectation(loserElo, winnerElo)))),
	}
}

// RacePoints computes the Race points one side earns from a match.
// Bonuses are additive; the tournament multiplier scales the sum, rounded half away from zero.
func (c *Calculator) RacePoints(f RaceFactors) RaceResult {
	points := c.cfg.BaseRacePoints
	parts := []string{fmt.Sprintf("base %d", c.cfg.BaseRacePoints)}

	if f.IsWinner {
		points += c.cfg.WinBonus
		parts = append(parts, fmt.Sprintf("win +%d", c.cfg.WinBonus))
	}
	if f.IsOffPeak {
		points += c.cfg.OffPeakBonus
		parts = append(parts, fmt.Sprintf("off-peak +%d", c.cfg.OffPeakBonus))
	}
	if f.IsMatchmakingChallenge {
		points += c.cfg.ChallengeBonus
		parts = append(parts, fmt.Sprintf("challenge +%d", c.cfg.ChallengeBonus))
	}

	multiplier := 1.0
	kind := "friendly"
	if f.IsTournament {
		multiplier = c.cfg.TournamentMultiplier
		kind = "tournament"
	}
	total := int(math.Round(float64(points) * multiplier))

	return RaceResult{
		Total:     total,
		Breakdown: fmt.Sprintf("%s = %d x%g (%s) = %d", strings.Join(parts, ", "), points, multiplier, kind, total),
	}
}
