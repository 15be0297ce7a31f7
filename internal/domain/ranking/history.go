package ranking

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// SaveRankingHistory records today's rank of every entry. Failures are only
// logged so that they never break the read path.
func (e *Engine) SaveRankingHistory(ctx context.Context, leaderboardID string, entries []model.RankingEntry) {
	date := dateutil.DateKey(e.now())
	for _, entry := range entries {
		err := e.rankingHistoryRepo.Upsert(ctx, &entity.RankingHistory{
			LeaderboardID: leaderboardID,
			UserID:        entry.UserID,
			Date:          date,
			Rank:          entry.Rank,
			Score:         entry.Score,
			Metrics:       entity.Map(entry.Metrics),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save ranking history of %s for user %s: %v",
				leaderboardID, entry.UserID, err)
		}
	}
}
