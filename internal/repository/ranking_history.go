package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type RankingHistoryRepository interface {
	// Upsert writes the row of (leaderboard, user, date), replacing any row
	// recorded earlier the same day.
	Upsert(ctx context.Context, history *entity.RankingHistory) error

	// GetRanks returns the recorded rank of every user of a leaderboard on
	// the given date, keyed by user id.
	GetRanks(ctx context.Context, leaderboardID, date string) (map[string]int, error)
}

type rankingHistoryRepository struct{}

func NewRankingHistoryRepository() RankingHistoryRepository {
	return &rankingHistoryRepository{}
}

func (r *rankingHistoryRepository) Upsert(ctx context.Context, history *entity.RankingHistory) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(history).Error
}

func (r *rankingHistoryRepository) GetRanks(
	ctx context.Context, leaderboardID, date string,
) (map[string]int, error) {
	var rows []entity.RankingHistory
	err := xcontext.DB(ctx).
		Select("user_id", "rank").
		Where("leaderboard_id=? AND date=?", leaderboardID, date).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ranks := make(map[string]int, len(rows))
	for _, row := range rows {
		ranks[row.UserID] = row.Rank
	}

	return ranks, nil
}
