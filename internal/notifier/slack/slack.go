package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/metrics"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendRaceStandings(ctx context.Context, tenantID string, rows []ranking.RankingWithDetails, dryRun bool) error {
	msg := s.formatRaceStandings(tenantID, rows)
	_, _, err := s.sendMessage(ctx, msg, dryRun)
	return err
}

// FormatRankingsResponse formats a leaderboard for a slash command response.
func (s *Notifier) FormatRankingsResponse(t ranking.LeaderboardType, rows []ranking.RankingWithDetails) (any, error) {
	return s.formatRankings(t, rows), nil
}

// FormatErrorResponse formats a short error reply, visible only to the caller.
func (s *Notifier) FormatErrorResponse(message string) (any, error) {
	msg := slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", ":warning: "+message, false, false), nil, nil),
	)
	msg.ResponseType = slack.ResponseTypeEphemeral
	return msg, nil
}

func medal(position int) string {
	switch position {
	case 1:
		return ":first_place_medal:"
	case 2:
		return ":second_place_medal:"
	case 3:
		return ":third_place_medal:"
	}
	return ""
}

// formatRankings creates the leaderboard message for the given type using Block Kit.
func (s *Notifier) formatRankings(t ranking.LeaderboardType, rows []ranking.RankingWithDetails) slack.Message {
	blocks := make([]slack.Block, 0, len(rows)+2)

	title := ":trophy: ELO Rankings :trophy:"
	if t == ranking.LeaderboardRace {
		title = ":checkered_flag: The Race :checkered_flag:"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No rankings yet. Go play some matches!", true, false), nil, nil))
		msg := slack.NewBlockMessage(blocks...)
		msg.ResponseType = slack.ResponseTypeInChannel
		return msg
	}

	for _, row := range rows {
		primary := fmt.Sprintf("%d ELO", row.EloScore)
		if t == ranking.LeaderboardRace {
			primary = fmt.Sprintf("%d pts", row.MonthlyRacePoints)
		}
		text := fmt.Sprintf("%d. %s *%s* | %s\n> Matches: %d | Win %%: %.2f%%",
			row.Position,
			medal(row.Position),
			row.UserName,
			primary,
			row.TotalMatches,
			row.WinRate,
		)
		var accessory *slack.Accessory
		if row.UserAvatar != nil {
			accessory = slack.NewAccessory(slack.NewImageBlockElement(*row.UserAvatar, row.UserName))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, accessory))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg
}

// formatRaceStandings creates the end-of-month announcement.
func (s *Notifier) formatRaceStandings(tenantID string, rows []ranking.RankingWithDetails) slack.Message {
	msg := s.formatRankings(ranking.LeaderboardRace, rows)
	intro := slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Final standings for *%s*. Race points are reset for the new month.", tenantID), false, false),
	)
	blocks := append([]slack.Block{msg.Blocks.BlockSet[0], intro}, msg.Blocks.BlockSet[1:]...)
	if len(rows) > 0 {
		winner := slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf(":tada: Congratulations *%s* on winning the Race with %d points!", rows[0].UserName, rows[0].MonthlyRacePoints),
			false, false), nil, nil)
		blocks = append(blocks, slack.NewDividerBlock(), winner)
	}
	return slack.NewBlockMessage(blocks...)
}
