package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

type LeaderboardRepository interface {
	Create(ctx context.Context, leaderboard *entity.Leaderboard) error
	GetByID(ctx context.Context, id string) (*entity.Leaderboard, error)
	GetEnabled(ctx context.Context) ([]entity.Leaderboard, error)
	GetEnabledByOrganizations(ctx context.Context, organizationIDs []string) ([]entity.Leaderboard, error)
}

type leaderboardRepository struct{}

func NewLeaderboardRepository() LeaderboardRepository {
	return &leaderboardRepository{}
}

func (r *leaderboardRepository) Create(ctx context.Context, leaderboard *entity.Leaderboard) error {
	return xcontext.DB(ctx).Create(leaderboard).Error
}

func (r *leaderboardRepository) GetByID(ctx context.Context, id string) (*entity.Leaderboard, error) {
	var result entity.Leaderboard
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *leaderboardRepository) GetEnabled(ctx context.Context) ([]entity.Leaderboard, error) {
	var result []entity.Leaderboard
	if err := xcontext.DB(ctx).Where("enabled=?", true).Order("id").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *leaderboardRepository) GetEnabledByOrganizations(
	ctx context.Context, organizationIDs []string,
) ([]entity.Leaderboard, error) {
	if len(organizationIDs) == 0 {
		return nil, nil
	}

	var result []entity.Leaderboard
	err := xcontext.DB(ctx).
		Where("enabled=? AND organization_id IN (?)", true, organizationIDs).
		Order("id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
