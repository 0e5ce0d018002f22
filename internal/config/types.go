package config

import "github.com/mauv0809/club-ladder/internal/rating"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	Port          string
	Slack         SlackConfig
	TenantID      string
	Turso         TursoConfig
	ProjectID     string
	RaceResetCron string
	Rating        rating.Config
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Enabled reports whether standings can be posted to Slack.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
