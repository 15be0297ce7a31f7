package ranking

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/numberutil"
	"github.com/shopspring/decimal"
)

// GetLeaderboardStatistics recomputes the leaderboard with the given category
// and timeframe, falling back to overall and weekly, and summarizes the
// scores.
func (e *Engine) GetLeaderboardStatistics(
	ctx context.Context,
	leaderboardID string,
	category entity.LeaderboardCategory,
	timeframe entity.LeaderboardTimeframe,
) (*model.LeaderboardStatistics, error) {
	cfg, err := e.loadConfig(ctx, leaderboardID)
	if err != nil {
		return nil, err
	}

	cfg.Category = entity.CategoryOverall
	if category != "" {
		cfg.Category = category
	}

	cfg.Timeframe = entity.TimeframeWeekly
	if timeframe != "" {
		cfg.Timeframe = timeframe
	}

	entries, err := e.rank(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return Statistics(entries), nil
}

// Statistics summarizes ranked entries. The distribution buckets are
// relative to the mean score.
func Statistics(entries []model.RankingEntry) *model.LeaderboardStatistics {
	stats := &model.LeaderboardStatistics{
		TotalParticipants: len(entries),
		ClassDistribution: map[string]int{},
	}

	if len(entries) == 0 {
		return stats
	}

	sum := decimal.Zero
	stats.MaxScore = entries[0].Score
	for _, entry := range entries {
		sum = sum.Add(decimal.NewFromFloat(entry.Score))
		if entry.Score > stats.MaxScore {
			stats.MaxScore = entry.Score
		}

		stats.ClassDistribution[entry.CharacterClass]++
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(entries))))
	half := mean.Mul(decimal.RequireFromString("0.5"))
	oneAndHalf := mean.Mul(decimal.RequireFromString("1.5"))
	for _, entry := range entries {
		s := decimal.NewFromFloat(entry.Score)
		switch {
		case s.LessThan(half):
			stats.ScoreDistribution.Low++
		case s.LessThan(mean):
			stats.ScoreDistribution.BelowAverage++
		case s.LessThanOrEqual(oneAndHalf):
			stats.ScoreDistribution.AboveAverage++
		default:
			stats.ScoreDistribution.High++
		}
	}

	stats.AverageScore = numberutil.RoundFloat(mean.InexactFloat64(), 2)
	return stats
}
