package reward

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type publishedNotifications struct {
	mutex  sync.Mutex
	topics []string
	items  []model.Notification
}

func (p *publishedNotifications) publisher() *testutil.MockPublisher {
	return &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			var n model.Notification
			if err := json.Unmarshal(pack.Msg, &n); err != nil {
				return err
			}

			p.mutex.Lock()
			defer p.mutex.Unlock()
			p.topics = append(p.topics, topic)
			p.items = append(p.items, n)
			return nil
		},
	}
}

func newTestDistributor(publisher pubsub.Publisher) *Distributor {
	d := NewDistributor(
		NewEngine(DefaultConfiguration()),
		repository.NewUserRepository(),
		repository.NewUserQuestRepository(),
		repository.NewRewardDistributionRepository(),
		publisher,
		[]int64{1000, 5000, 10000, 50000},
	)
	d.now = func() time.Time { return testutil.FixtureTime.Add(time.Minute) }
	return d
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}

func TestDistributor_InvalidUserID(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	userQuest := copyOf(testutil.UserQuest1)
	userQuest.UserID = "user1"

	_, err := d.DistributeQuestRewards(ctx, userQuest, testutil.Quest1)
	require.Error(t, err)
	require.True(t, errorx.IsCode(err, errorx.BadRequest))
	require.Contains(t, err.Error(), "user_id")
}

func TestDistributor_NotCompleted(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	for _, quest := range testutil.Quests {
		result, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest2), quest)
		require.NoError(t, err)
		require.Equal(t, &DistributeResult{Success: false, Reason: "Quest not completed"}, result)
	}
}

func TestDistributor_AlreadyClaimed(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	result, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest3), testutil.Quest1)
	require.NoError(t, err)
	require.Equal(t, &DistributeResult{Success: false, Reason: "Rewards already claimed"}, result)
}

func TestDistributor_Success(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	published := &publishedNotifications{}
	d := newTestDistributor(published.publisher())

	userQuest := copyOf(testutil.UserQuest1)
	result, err := d.DistributeQuestRewards(ctx, userQuest, testutil.Quest1)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.Reason)

	// 100 xp * scout 1.1 * speed 1.1 * first 1.5, commission 10 * 1.1 * 1.5.
	require.Equal(t, &model.QuestReward{XP: 182, Commission: 16.5}, result.Rewards)

	require.True(t, userQuest.RewardClaimed)
	require.True(t, userQuest.RewardClaimedAt.Valid)

	stored, err := repository.NewUserQuestRepository().GetByID(ctx, userQuest.ID)
	require.NoError(t, err)
	require.True(t, stored.RewardClaimed)
	require.True(t, stored.RewardClaimedAt.Valid)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(182), user.TotalXP)
	require.Equal(t, 16.5, user.TotalCommission)

	distribution, err := repository.NewRewardDistributionRepository().GetByUserQuestID(ctx, userQuest.ID)
	require.NoError(t, err)
	require.Equal(t, int64(182), distribution.XP)
	require.Equal(t, 16.5, distribution.Commission)
	require.Equal(t, 1.5, distribution.Multipliers["first_completion"])

	require.Len(t, published.items, 1)
	require.Equal(t, "notification", published.topics[0])
	require.Equal(t, "quest_reward", published.items[0].NotificationType)
	require.Equal(t, testutil.User1.ID, published.items[0].UserID)
}

func TestDistributor_Idempotent(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	userQuest := copyOf(testutil.UserQuest1)
	stale := copyOf(testutil.UserQuest1)

	result, err := d.DistributeQuestRewards(ctx, userQuest, testutil.Quest1)
	require.NoError(t, err)
	require.True(t, result.Success)

	result, err = d.DistributeQuestRewards(ctx, userQuest, testutil.Quest1)
	require.NoError(t, err)
	require.Equal(t, &DistributeResult{Success: false, Reason: "Rewards already claimed"}, result)

	// A stale copy still sees the quest unclaimed, the store rejects it.
	result, err = d.DistributeQuestRewards(ctx, stale, testutil.Quest1)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Rewards already claimed", result.Reason)
	require.False(t, stale.RewardClaimed)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(182), user.TotalXP)
}

func TestDistributor_ConcurrentClaims(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	var wg sync.WaitGroup
	var mutex sync.Mutex
	successes := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest1), testutil.Quest1)
			if err == nil && result.Success {
				mutex.Lock()
				successes++
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(182), user.TotalXP)
}

func TestDistributor_FirstCompletionOnlyOnce(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	result, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest1), testutil.Quest1)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 1.5, result.Breakdown.FirstCompletion)

	again := copyOf(testutil.UserQuest1)
	again.ID = uuid.NewString()
	require.NoError(t, repository.NewUserQuestRepository().Create(ctx, again))

	result, err = d.DistributeQuestRewards(ctx, again, testutil.Quest1)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 1.0, result.Breakdown.FirstCompletion)
	require.Equal(t, &model.QuestReward{XP: 121, Commission: 11}, result.Rewards)
}

func TestDistributor_Milestone(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	published := &publishedNotifications{}
	d := newTestDistributor(published.publisher())

	result, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest5), testutil.Quest2)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, &model.QuestReward{XP: 2070, Commission: 202.95}, result.Rewards)

	require.Len(t, published.items, 2)
	require.Equal(t, "quest_reward", published.items[0].NotificationType)
	require.Equal(t, "milestone", published.items[1].NotificationType)
	require.Equal(t, float64(1000), published.items[1].Data["milestone"])
}

// interleavedUserRepository credits xp right after every read, as another
// distribution for the same user committing in between would.
type interleavedUserRepository struct {
	repository.UserRepository
	xp int64
}

func (r *interleavedUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := r.UserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.UserRepository.CreditReward(ctx, id, r.xp, 0); err != nil {
		return nil, err
	}

	return user, nil
}

func TestDistributor_MilestoneUsesCreditedTotal(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	published := &publishedNotifications{}
	d := NewDistributor(
		NewEngine(DefaultConfiguration()),
		&interleavedUserRepository{UserRepository: repository.NewUserRepository(), xp: 100},
		repository.NewUserQuestRepository(),
		repository.NewRewardDistributionRepository(),
		published.publisher(),
		[]int64{1000, 5000, 10000, 50000},
	)
	d.now = func() time.Time { return testutil.FixtureTime.Add(time.Minute) }

	// 950 -> 1050 by the other credit, then -> 3120 by this one.
	result, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest5), testutil.Quest2)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, int64(2070), result.Rewards.XP)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3120), user.TotalXP)

	require.Len(t, published.items, 1)
	require.Equal(t, "quest_reward", published.items[0].NotificationType)
}

func TestDistributor_PersistenceFailure(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	userQuest := copyOf(testutil.UserQuest1)
	userQuest.UserID = uuid.NewString()

	result, err := d.DistributeQuestRewards(ctx, userQuest, testutil.Quest1)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "record not found", result.Reason)
	require.False(t, userQuest.RewardClaimed)
}

func TestDistributor_RewardLimitExceeded(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDistributor(&testutil.MockPublisher{})

	quest := copyOf(testutil.Quest1)
	quest.RewardXP = 10000

	_, err := d.DistributeQuestRewards(ctx, copyOf(testutil.UserQuest1), quest)
	require.True(t, errorx.IsCode(err, errorx.RewardLimitExceeded))

	var stored entity.UserQuest
	require.NoError(t, xcontext.DB(ctx).Take(&stored, "id=?", testutil.UserQuest1.ID).Error)
	require.False(t, stored.RewardClaimed)
}
