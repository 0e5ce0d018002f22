package rating

// Config holds the tunable constants of the rating and Race formulas.
type Config struct {
	// KFactor is the maximum ELO adjustment for a single match.
	KFactor float64 `koanf:"k_factor"`
	// InitialElo seeds ranking records created on a player's first match.
	InitialElo int `koanf:"initial_elo"`

	BaseRacePoints       int     `koanf:"base_race_points"`
	WinBonus             int     `koanf:"win_bonus"`
	OffPeakBonus         int     `koanf:"off_peak_bonus"`
	ChallengeBonus       int     `koanf:"challenge_bonus"`
	TournamentMultiplier float64 `koanf:"tournament_multiplier"`
}

// EloResult holds the rating change of each side of a match.
// The two gains are rounded independently and need not sum to zero.
type EloResult struct {
	WinnerGain int
	LoserGain  int
}

// RaceFactors describes one side of a match for Race scoring.
type RaceFactors struct {
	IsWinner               bool
	IsTournament           bool
	IsOffPeak              bool
	IsMatchmakingChallenge bool
}

// RaceResult is the Race point gain for one side plus a readable breakdown.
type RaceResult struct {
	Total     int
	Breakdown string
}
