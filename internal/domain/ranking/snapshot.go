package ranking

import (
	"context"
	"errors"
	"time"

	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

// Snapshot is the shown ranking of a leaderboard as of its last refresh.
// Entries are cut to the leaderboard's max entries, Total counts the whole
// ranked cohort.
type Snapshot struct {
	LeaderboardID string               `json:"leaderboard_id"`
	RefreshedAt   time.Time            `json:"refreshed_at"`
	Total         int                  `json:"total"`
	Entries       []model.RankingEntry `json:"entries"`
}

func (e *Engine) loadConfig(ctx context.Context, leaderboardID string) (Config, error) {
	leaderboard, err := e.leaderboardRepo.GetByID(ctx, leaderboardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Config{}, errorx.New(errorx.NotFound, "Not found leaderboard")
		}

		xcontext.Logger(ctx).Errorf("Cannot get leaderboard %s: %v", leaderboardID, err)
		return Config{}, errorx.Unknown
	}

	return ConfigFromEntity(leaderboard)
}

// RefreshLeaderboard recomputes a stored leaderboard, records today's history
// and caches the ranking for GetSnapshot.
func (e *Engine) RefreshLeaderboard(ctx context.Context, leaderboardID string) ([]model.RankingEntry, error) {
	snapshot, err := e.refresh(ctx, leaderboardID)
	if err != nil {
		common.PromCounters[common.LeaderboardRefreshTotal].WithLabelValues("failure").Inc()
		return nil, err
	}

	common.PromCounters[common.LeaderboardRefreshTotal].WithLabelValues("success").Inc()
	return snapshot.Entries, nil
}

func (e *Engine) refresh(ctx context.Context, leaderboardID string) (*Snapshot, error) {
	cfg, err := e.loadConfig(ctx, leaderboardID)
	if err != nil {
		return nil, err
	}

	entries, err := e.rank(ctx, cfg)
	if err != nil {
		return nil, err
	}

	e.SaveRankingHistory(ctx, leaderboardID, entries)

	snapshot := &Snapshot{
		LeaderboardID: leaderboardID,
		RefreshedAt:   e.now(),
		Total:         len(entries),
		Entries:       truncate(entries, cfg.MaxEntries),
	}

	key := common.RedisKeyLeaderboardSnapshot(leaderboardID)
	ttl := xcontext.Configs(ctx).Leaderboard.SnapshotTTL
	if err := e.redisClient.SetObj(ctx, key, snapshot, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache snapshot of leaderboard %s: %v", leaderboardID, err)
	}

	return snapshot, nil
}

// GetSnapshot pages through the cached ranking of a leaderboard. A missing
// snapshot is rebuilt by refreshing the leaderboard. It returns the page and
// the number of ranked members, which may exceed the shown entries.
func (e *Engine) GetSnapshot(
	ctx context.Context, leaderboardID string, offset, limit int,
) ([]model.RankingEntry, int, error) {
	key := common.RedisKeyLeaderboardSnapshot(leaderboardID)
	exist, err := e.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, 0, errorx.Unknown
	}

	snapshot := &Snapshot{}
	if exist {
		if err := e.redisClient.GetObj(ctx, key, snapshot); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get snapshot of leaderboard %s: %v", leaderboardID, err)
			return nil, 0, errorx.Unknown
		}
	} else {
		snapshot, err = e.refresh(ctx, leaderboardID)
		if err != nil {
			return nil, 0, err
		}
	}

	return page(snapshot.Entries, offset, limit), snapshot.Total, nil
}

func page(entries []model.RankingEntry, offset, limit int) []model.RankingEntry {
	if offset < 0 {
		offset = 0
	}

	if offset >= len(entries) {
		return []model.RankingEntry{}
	}

	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return entries[offset:end]
}
