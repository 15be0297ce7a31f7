package ranking

import (
	"context"

	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/numberutil"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// GetUserRankings recomputes every enabled leaderboard of the organizations
// and returns the position of the user, keyed by leaderboard id. Leaderboards
// whose filtered cohort does not contain the user are omitted.
func (e *Engine) GetUserRankings(
	ctx context.Context, userID string, organizationIDs []string,
) (map[string]model.UserRanking, error) {
	leaderboards, err := e.leaderboardRepo.GetEnabledByOrganizations(ctx, organizationIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboards: %v", err)
		return nil, errorx.Unknown
	}

	rankings := xsync.NewMapOf[model.UserRanking]()

	eg, egCtx := errgroup.WithContext(ctx)
	for i := range leaderboards {
		leaderboard := &leaderboards[i]
		eg.Go(func() error {
			cfg, err := ConfigFromEntity(leaderboard)
			if err != nil {
				return err
			}

			entries, err := e.rank(egCtx, cfg)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				if entry.UserID != userID {
					continue
				}

				rankings.Store(leaderboard.ID, model.UserRanking{
					LeaderboardID:     leaderboard.ID,
					LeaderboardName:   leaderboard.Name,
					Rank:              entry.Rank,
					Score:             entry.Score,
					Change:            entry.Change,
					TotalParticipants: len(entries),
					Percentile:        numberutil.Percentile(entry.Rank, len(entries)),
				})
				break
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := map[string]model.UserRanking{}
	rankings.Range(func(id string, r model.UserRanking) bool {
		result[id] = r
		return true
	})

	return result, nil
}
