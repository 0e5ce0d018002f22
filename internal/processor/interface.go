package processor

import "context"

// MatchProcessor applies a match outcome to both players' rankings.
type MatchProcessor interface {
	Process(ctx context.Context, data MatchData) (*RankingChanges, error)
	Preview(ctx context.Context, data MatchData) (*RankingChanges, error)
}

// MatchRecorder stores a match result and rates it.
type MatchRecorder interface {
	RecordResult(ctx context.Context, in RecordInput) (*RecordResult, error)
	Preview(ctx context.Context, in RecordInput) (*RankingChanges, error)
}
