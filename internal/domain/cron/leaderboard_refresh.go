package cron

import (
	"context"
	"time"

	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentRefreshes = 4

type LeaderboardRefresher interface {
	RefreshLeaderboard(ctx context.Context, leaderboardID string) ([]model.RankingEntry, error)
}

// LeaderboardRefreshCronJob rebuilds the snapshot and today's ranking history
// of every enabled leaderboard once a day.
type LeaderboardRefreshCronJob struct {
	leaderboardRepo repository.LeaderboardRepository
	refresher       LeaderboardRefresher
}

func NewLeaderboardRefreshCronJob(
	leaderboardRepo repository.LeaderboardRepository,
	refresher LeaderboardRefresher,
) *LeaderboardRefreshCronJob {
	return &LeaderboardRefreshCronJob{
		leaderboardRepo: leaderboardRepo,
		refresher:       refresher,
	}
}

func (job *LeaderboardRefreshCronJob) Do(ctx context.Context) {
	leaderboards, err := job.leaderboardRepo.GetEnabled(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get enabled leaderboards: %v", err)
		return
	}

	eg := errgroup.Group{}
	eg.SetLimit(maxConcurrentRefreshes)
	for i := range leaderboards {
		id := leaderboards[i].ID
		eg.Go(func() error {
			if _, err := job.refresher.RefreshLeaderboard(ctx, id); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot refresh leaderboard %s: %v", id, err)
			}

			return nil
		})
	}

	_ = eg.Wait()
}

func (job *LeaderboardRefreshCronJob) RunNow() bool {
	return true
}

func (job *LeaderboardRefreshCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
