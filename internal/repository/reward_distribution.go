package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

type RewardDistributionRepository interface {
	Create(ctx context.Context, distribution *entity.RewardDistribution) error
	GetByUserQuestID(ctx context.Context, userQuestID string) (*entity.RewardDistribution, error)
	CountByUserAndQuest(ctx context.Context, userID, questID string) (int64, error)
}

type rewardDistributionRepository struct{}

func NewRewardDistributionRepository() RewardDistributionRepository {
	return &rewardDistributionRepository{}
}

func (r *rewardDistributionRepository) Create(ctx context.Context, distribution *entity.RewardDistribution) error {
	return xcontext.DB(ctx).Create(distribution).Error
}

func (r *rewardDistributionRepository) GetByUserQuestID(
	ctx context.Context, userQuestID string,
) (*entity.RewardDistribution, error) {
	var result entity.RewardDistribution
	if err := xcontext.DB(ctx).Take(&result, "user_quest_id=?", userQuestID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardDistributionRepository) CountByUserAndQuest(
	ctx context.Context, userID, questID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.RewardDistribution{}).
		Where("user_id=? AND quest_id=?", userID, questID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
