package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rankingsCmd.Flags().String("type", "elo", "Leaderboard to show: elo or race")
	rankingsCmd.Flags().Int("limit", 0, "Number of rows, 0 for the server default")
	headsCmd.Flags().Int("count", 4, "Number of seeds")
	recordCmd.Flags().String("score", "", "Final score, e.g. 6-4 6-3")
	recordCmd.Flags().Bool("tournament", false, "The match was part of a tournament")
	recordCmd.Flags().Bool("off-peak", false, "The match was played off-peak")
	recordCmd.Flags().Bool("challenge", false, "The match came from a matchmaking challenge")
	recordCmd.Flags().Bool("async", false, "Queue the result instead of rating it immediately")
	resetCmd.Flags().Bool("all", false, "Reset every tenant")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(headsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil, nil)
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the ELO or Race leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")
		q := url.Values{"type": {t}}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		return performRequest(http.MethodGet, "/rankings", q, nil)
	},
}

var headsCmd = &cobra.Command{
	Use:   "heads",
	Short: "Show the top players by ELO for tournament seeding",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return performRequest(http.MethodGet, "/rankings/heads", url.Values{"count": {strconv.Itoa(count)}}, nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <winner-id> <loser-id>",
	Short: "Record a match result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetString("score")
		tournament, _ := cmd.Flags().GetBool("tournament")
		offPeak, _ := cmd.Flags().GetBool("off-peak")
		challenge, _ := cmd.Flags().GetBool("challenge")
		async, _ := cmd.Flags().GetBool("async")

		body := map[string]any{
			"winner_id":                args[0],
			"loser_id":                 args[1],
			"score":                    score,
			"is_tournament":            tournament,
			"is_off_peak":              offPeak,
			"is_matchmaking_challenge": challenge,
		}
		q := url.Values{}
		if async {
			q.Set("async", "true")
		}
		return performRequest(http.MethodPost, "/matches", q, body)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset monthly Race points of the tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all {
			tenantID = ""
		} else if tenantID == "" {
			return fmt.Errorf("either --tenant or --all is required")
		}
		return performRequest(http.MethodPost, "/rankings/reset", nil, nil)
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members of the tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/members", nil, nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil, nil)
	},
}

func performRequest(method, endpoint string, query url.Values, payload any) error {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != "" {
		req.Header.Set("X-Tenant-ID", tenantID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
