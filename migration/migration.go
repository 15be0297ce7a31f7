package migration

import (
	"context"
	"errors"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Append new migrators to the end of this list, never reorder it.
var migrators = []func(context.Context) error{
	migrate0000,
	migrate0001,
}

// migrate0000 will create the database with the latest version.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}

func migrate0001(ctx context.Context) error {
	if xcontext.DB(ctx).Migrator().HasIndex(&entity.RankingHistory{}, "idx_ranking_history_leaderboard_date") {
		return nil
	}

	return xcontext.DB(ctx).Exec(
		"CREATE INDEX idx_ranking_history_leaderboard_date ON ranking_histories (leaderboard_id, date)",
	).Error
}

// Migrate runs every migrator newer than the recorded version.
func Migrate(ctx context.Context) error {
	db := xcontext.DB(ctx)
	if err := db.AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	current := entity.Migration{Version: -1}
	err := db.Order("version DESC").Take(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	for version := current.Version + 1; version < len(migrators); version++ {
		xcontext.Logger(ctx).Infof("Migrating database to version %d", version)
		if err := migrators[version](ctx); err != nil {
			return err
		}

		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entity.Migration{Version: version}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
