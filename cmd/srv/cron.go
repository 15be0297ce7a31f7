package main

import (
	"os/signal"
	"syscall"

	"github.com/questx-lab/questboard/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadEngines()

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		ctx,
		cron.NewLeaderboardRefreshCronJob(s.leaderboardRepo, s.rankingEngine),
	)

	return nil
}
