package main

import (
	"context"
	"fmt"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/domain"
	"github.com/questx-lab/questboard/internal/domain/ranking"
	"github.com/questx-lab/questboard/internal/domain/reward"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/migration"
	"github.com/questx-lab/questboard/pkg/kafka"
	"github.com/questx-lab/questboard/pkg/logger"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/questx-lab/questboard/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		panic(fmt.Sprintf("unsupported database driver %s", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis.Addr)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher("questboard", []string{xcontext.Configs(s.ctx).Kafka.Addr})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.questRepo = repository.NewQuestRepository()
	s.userQuestRepo = repository.NewUserQuestRepository()
	s.userRepo = repository.NewUserRepository()
	s.memberPerformanceRepo = repository.NewMemberPerformanceRepository()
	s.leaderboardRepo = repository.NewLeaderboardRepository()
	s.rankingHistoryRepo = repository.NewRankingHistoryRepository()
	s.rewardDistributionRepo = repository.NewRewardDistributionRepository()
	s.notificationRepo = repository.NewNotificationRepository()
}

func (s *srv) loadEngines() {
	cfg := xcontext.Configs(s.ctx)

	rewardCfg := reward.ConfigurationFromConfigs(cfg.Reward)
	if err := reward.ValidateRewardConfiguration(rewardCfg); err != nil {
		panic(err)
	}

	s.rewardEngine = reward.NewEngine(rewardCfg)
	s.distributor = reward.NewDistributor(
		s.rewardEngine,
		s.userRepo,
		s.userQuestRepo,
		s.rewardDistributionRepo,
		s.publisher,
		cfg.Reward.Milestones,
	)
	s.rankingEngine = ranking.NewEngine(
		s.memberPerformanceRepo,
		s.rankingHistoryRepo,
		s.leaderboardRepo,
		s.redisClient,
	)
}

func (s *srv) loadDomains() {
	s.leaderboardDomain = domain.NewLeaderboardDomain(s.leaderboardRepo, s.rankingEngine)
	s.rewardDomain = domain.NewRewardDomain(
		s.questRepo,
		s.userQuestRepo,
		s.rewardDistributionRepo,
		s.rewardEngine,
		s.distributor,
	)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
}
