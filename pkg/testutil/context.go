package testutil

import (
	"context"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/logger"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewMockContext returns a context carrying default configs, a silent logger
// and a migrated in-memory database.
func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		panic(err)
	}

	// Every connection to :memory: opens its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Default())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
