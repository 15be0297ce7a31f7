package main

import (
	"context"

	"github.com/questx-lab/questboard/internal/domain"
	"github.com/questx-lab/questboard/internal/domain/ranking"
	"github.com/questx-lab/questboard/internal/domain/reward"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	publisher   pubsub.Publisher

	questRepo              repository.QuestRepository
	userQuestRepo          repository.UserQuestRepository
	userRepo               repository.UserRepository
	memberPerformanceRepo  repository.MemberPerformanceRepository
	leaderboardRepo        repository.LeaderboardRepository
	rankingHistoryRepo     repository.RankingHistoryRepository
	rewardDistributionRepo repository.RewardDistributionRepository
	notificationRepo       repository.NotificationRepository

	rewardEngine  *reward.Engine
	distributor   *reward.Distributor
	rankingEngine *ranking.Engine

	leaderboardDomain  domain.LeaderboardDomain
	rewardDomain       domain.RewardDomain
	notificationDomain domain.NotificationDomain

	router *router.Router
}
