package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/questboard/internal/middleware"
	"github.com/questx-lab/questboard/pkg/prometheus"
	"github.com/questx-lab/questboard/pkg/ratelimit"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadEngines()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	rateLimitStore := ratelimit.NewStore(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		cfg.RateLimit.IdleTTL,
		cfg.RateLimit.CleanupInterval,
	)
	defer rateLimitStore.Close()

	s.loadRouter(rateLimitStore)

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.ApiServer.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
	}).Handler(s.router.Handler())

	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("cannot serve api: %w", err)
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter(rateLimitStore *ratelimit.Store) {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.After(middleware.Logger())
	s.router.After(middleware.Prometheus())
	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler(prometheus.NewRegistry()))

	limitedRouter := s.router.Branch()
	limitedRouter.Before(middleware.RateLimit(rateLimitStore))
	{
		// Leaderboard API
		router.GET(limitedRouter, "/getLeaderboard", s.leaderboardDomain.GetLeaderboard)
		router.GET(limitedRouter, "/getUserRankings", s.leaderboardDomain.GetUserRankings)
		router.GET(limitedRouter, "/getLeaderboardStatistics", s.leaderboardDomain.GetLeaderboardStatistics)
		router.GET(limitedRouter, "/getLeaderboardSnapshot", s.leaderboardDomain.GetLeaderboardSnapshot)
		router.POST(limitedRouter, "/refreshLeaderboard", s.leaderboardDomain.RefreshLeaderboard)

		// Reward API
		router.POST(limitedRouter, "/distributeQuestRewards", s.rewardDomain.DistributeQuestRewards)
		router.GET(limitedRouter, "/getRewardDistribution", s.rewardDomain.GetRewardDistribution)
		router.GET(limitedRouter, "/getRewardConfiguration", s.rewardDomain.GetRewardConfiguration)

		// Notification API
		router.GET(limitedRouter, "/getNotifications", s.notificationDomain.GetNotifications)
	}
}
