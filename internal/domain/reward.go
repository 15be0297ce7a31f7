package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/questboard/internal/domain/reward"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardDomain interface {
	DistributeQuestRewards(context.Context, *model.DistributeQuestRewardsRequest) (*model.DistributeQuestRewardsResponse, error)
	GetRewardConfiguration(context.Context, *model.GetRewardConfigurationRequest) (*model.GetRewardConfigurationResponse, error)
	GetRewardDistribution(context.Context, *model.GetRewardDistributionRequest) (*model.GetRewardDistributionResponse, error)
}

type rewardDomain struct {
	questRepo              repository.QuestRepository
	userQuestRepo          repository.UserQuestRepository
	rewardDistributionRepo repository.RewardDistributionRepository
	rewardEngine           *reward.Engine
	distributor            *reward.Distributor
}

func NewRewardDomain(
	questRepo repository.QuestRepository,
	userQuestRepo repository.UserQuestRepository,
	rewardDistributionRepo repository.RewardDistributionRepository,
	rewardEngine *reward.Engine,
	distributor *reward.Distributor,
) *rewardDomain {
	return &rewardDomain{
		questRepo:              questRepo,
		userQuestRepo:          userQuestRepo,
		rewardDistributionRepo: rewardDistributionRepo,
		rewardEngine:           rewardEngine,
		distributor:            distributor,
	}
}

func (d *rewardDomain) DistributeQuestRewards(
	ctx context.Context, req *model.DistributeQuestRewardsRequest,
) (*model.DistributeQuestRewardsResponse, error) {
	if req.UserQuestID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user quest id")
	}

	userQuest, err := d.userQuestRepo.GetByID(ctx, req.UserQuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user quest: %v", err)
		return nil, errorx.Unknown
	}

	quest, err := d.questRepo.GetByID(ctx, userQuest.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.distributor.DistributeQuestRewards(ctx, userQuest, quest)
	if err != nil {
		return nil, err
	}

	resp := &model.DistributeQuestRewardsResponse{
		Success: result.Success,
		Rewards: result.Rewards,
		Reason:  result.Reason,
	}
	if result.Success {
		resp.Multipliers = result.Breakdown.Map()
	}

	return resp, nil
}

func (d *rewardDomain) GetRewardConfiguration(
	ctx context.Context, req *model.GetRewardConfigurationRequest,
) (*model.GetRewardConfigurationResponse, error) {
	return &model.GetRewardConfigurationResponse{
		Configuration: d.rewardEngine.GetRewardConfiguration(),
	}, nil
}

func (d *rewardDomain) GetRewardDistribution(
	ctx context.Context, req *model.GetRewardDistributionRequest,
) (*model.GetRewardDistributionResponse, error) {
	if req.UserQuestID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user quest id")
	}

	distribution, err := d.rewardDistributionRepo.GetByUserQuestID(ctx, req.UserQuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward distribution")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward distribution: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRewardDistributionResponse{
		Distribution: convertRewardDistribution(distribution),
	}, nil
}
