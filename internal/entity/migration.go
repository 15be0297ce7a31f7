package entity

import (
	"context"

	"github.com/questx-lab/questboard/pkg/xcontext"
)

type Migration struct {
	Version int `gorm:"primaryKey"`
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Quest{},
		&UserQuest{},
		&MemberPerformance{},
		&Leaderboard{},
		&RankingHistory{},
		&RewardDistribution{},
		&Notification{},
		&Migration{},
	)
}
