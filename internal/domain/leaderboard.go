package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/questboard/internal/domain/ranking"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type LeaderboardDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetUserRankings(context.Context, *model.GetUserRankingsRequest) (*model.GetUserRankingsResponse, error)
	GetLeaderboardStatistics(context.Context, *model.GetLeaderboardStatisticsRequest) (*model.GetLeaderboardStatisticsResponse, error)
	GetLeaderboardSnapshot(context.Context, *model.GetLeaderboardSnapshotRequest) (*model.GetLeaderboardSnapshotResponse, error)
	RefreshLeaderboard(context.Context, *model.RefreshLeaderboardRequest) (*model.RefreshLeaderboardResponse, error)
}

type leaderboardDomain struct {
	leaderboardRepo repository.LeaderboardRepository
	rankingEngine   *ranking.Engine
}

func NewLeaderboardDomain(
	leaderboardRepo repository.LeaderboardRepository,
	rankingEngine *ranking.Engine,
) *leaderboardDomain {
	return &leaderboardDomain{
		leaderboardRepo: leaderboardRepo,
		rankingEngine:   rankingEngine,
	}
}

func (d *leaderboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.LeaderboardID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty leaderboard id")
	}

	leaderboard, err := d.leaderboardRepo.GetByID(ctx, req.LeaderboardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found leaderboard")
		}

		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	if !leaderboard.Enabled {
		return nil, errorx.New(errorx.Unavailable, "Leaderboard is disabled")
	}

	cfg, err := ranking.ConfigFromEntity(leaderboard)
	if err != nil {
		return nil, err
	}

	entries, err := d.rankingEngine.CalculateLeaderboard(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

func (d *leaderboardDomain) GetUserRankings(
	ctx context.Context, req *model.GetUserRankingsRequest,
) (*model.GetUserRankingsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	if len(req.OrganizationIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Require at least one organization")
	}

	rankings, err := d.rankingEngine.GetUserRankings(ctx, req.UserID, req.OrganizationIDs)
	if err != nil {
		return nil, err
	}

	return &model.GetUserRankingsResponse{Rankings: rankings}, nil
}

func (d *leaderboardDomain) GetLeaderboardStatistics(
	ctx context.Context, req *model.GetLeaderboardStatisticsRequest,
) (*model.GetLeaderboardStatisticsResponse, error) {
	if req.LeaderboardID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty leaderboard id")
	}

	stats, err := d.rankingEngine.GetLeaderboardStatistics(ctx, req.LeaderboardID,
		entity.LeaderboardCategory(req.Category), entity.LeaderboardTimeframe(req.Timeframe))
	if err != nil {
		return nil, err
	}

	return (*model.GetLeaderboardStatisticsResponse)(stats), nil
}

func (d *leaderboardDomain) GetLeaderboardSnapshot(
	ctx context.Context, req *model.GetLeaderboardSnapshotRequest,
) (*model.GetLeaderboardSnapshotResponse, error) {
	if req.LeaderboardID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty leaderboard id")
	}

	if err := checkPagination(req.Offset, &req.Limit); err != nil {
		return nil, err
	}

	entries, total, err := d.rankingEngine.GetSnapshot(ctx, req.LeaderboardID, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardSnapshotResponse{Entries: entries, Total: total}, nil
}

func (d *leaderboardDomain) RefreshLeaderboard(
	ctx context.Context, req *model.RefreshLeaderboardRequest,
) (*model.RefreshLeaderboardResponse, error) {
	if req.LeaderboardID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty leaderboard id")
	}

	entries, err := d.rankingEngine.RefreshLeaderboard(ctx, req.LeaderboardID)
	if err != nil {
		return nil, err
	}

	return &model.RefreshLeaderboardResponse{Entries: entries}, nil
}
