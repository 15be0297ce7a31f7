package domain

import (
	"testing"

	"github.com/questx-lab/questboard/internal/domain/reward"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestRewardDomain() *rewardDomain {
	engine := reward.NewEngine(reward.DefaultConfiguration())
	return NewRewardDomain(
		repository.NewQuestRepository(),
		repository.NewUserQuestRepository(),
		repository.NewRewardDistributionRepository(),
		engine,
		reward.NewDistributor(
			engine,
			repository.NewUserRepository(),
			repository.NewUserQuestRepository(),
			repository.NewRewardDistributionRepository(),
			&testutil.MockPublisher{},
			[]int64{1000, 5000, 10000, 50000},
		),
	)
}

func Test_rewardDomain_DistributeQuestRewards(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain()

	resp, err := domain.DistributeQuestRewards(ctx, &model.DistributeQuestRewardsRequest{
		UserQuestID: testutil.UserQuest1.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, &model.QuestReward{XP: 182, Commission: 16.5}, resp.Rewards)
	require.Equal(t, 1.1, resp.Multipliers["class_xp"])
	require.Equal(t, 1.5, resp.Multipliers["first_completion"])

	resp, err = domain.DistributeQuestRewards(ctx, &model.DistributeQuestRewardsRequest{
		UserQuestID: testutil.UserQuest1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, &model.DistributeQuestRewardsResponse{
		Success: false,
		Reason:  "Rewards already claimed",
	}, resp)

	resp, err = domain.DistributeQuestRewards(ctx, &model.DistributeQuestRewardsRequest{
		UserQuestID: testutil.UserQuest2.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "Quest not completed", resp.Reason)

	_, err = domain.DistributeQuestRewards(ctx, &model.DistributeQuestRewardsRequest{UserQuestID: "unknown"})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	_, err = domain.DistributeQuestRewards(ctx, &model.DistributeQuestRewardsRequest{})
	require.True(t, errorx.IsCode(err, errorx.BadRequest))
}

func Test_rewardDomain_GetRewardDistribution(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRewardDomain()

	_, err := domain.GetRewardDistribution(ctx, &model.GetRewardDistributionRequest{
		UserQuestID: testutil.UserQuest1.ID,
	})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	_, err = domain.DistributeQuestRewards(ctx, &model.DistributeQuestRewardsRequest{
		UserQuestID: testutil.UserQuest1.ID,
	})
	require.NoError(t, err)

	resp, err := domain.GetRewardDistribution(ctx, &model.GetRewardDistributionRequest{
		UserQuestID: testutil.UserQuest1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Distribution.UserID)
	require.Equal(t, testutil.Quest1.ID, resp.Distribution.QuestID)
	require.Equal(t, int64(182), resp.Distribution.XP)
	require.Equal(t, 16.5, resp.Distribution.Commission)
}

func Test_rewardDomain_GetRewardConfiguration(t *testing.T) {
	ctx := testutil.NewMockContext()
	resp, err := newTestRewardDomain().GetRewardConfiguration(ctx, &model.GetRewardConfigurationRequest{})
	require.NoError(t, err)
	require.Equal(t, reward.DefaultConfiguration(), resp.Configuration)
}
