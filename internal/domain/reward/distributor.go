package reward

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/enum"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

const (
	ReasonNotCompleted   = "Quest not completed"
	ReasonAlreadyClaimed = "Rewards already claimed"
)

type DistributeResult struct {
	Success   bool
	Rewards   *model.QuestReward
	Reason    string
	Breakdown Breakdown
}

type Distributor struct {
	engine                 *Engine
	userRepo               repository.UserRepository
	userQuestRepo          repository.UserQuestRepository
	rewardDistributionRepo repository.RewardDistributionRepository
	publisher              pubsub.Publisher
	milestones             []int64
	validate               *validator.Validate
	now                    func() time.Time
}

func NewDistributor(
	engine *Engine,
	userRepo repository.UserRepository,
	userQuestRepo repository.UserQuestRepository,
	rewardDistributionRepo repository.RewardDistributionRepository,
	publisher pubsub.Publisher,
	milestones []int64,
) *Distributor {
	return &Distributor{
		engine:                 engine,
		userRepo:               userRepo,
		userQuestRepo:          userQuestRepo,
		rewardDistributionRepo: rewardDistributionRepo,
		publisher:              publisher,
		milestones:             milestones,
		validate:               validator.New(),
		now:                    time.Now,
	}
}

// DistributeQuestRewards credits the reward of a completed user quest and
// marks it claimed. Business rejections and persistence failures are reported
// in the result; only malformed input and invalid rewards are returned as
// errors. On success userQuest is updated in place.
func (d *Distributor) DistributeQuestRewards(
	ctx context.Context, userQuest *entity.UserQuest, quest *entity.Quest,
) (*DistributeResult, error) {
	if err := d.validate.Var(userQuest.UserID, "required,uuid"); err != nil {
		xcontext.Logger(ctx).Debugf("Invalid user id %q: %v", userQuest.UserID, err)
		return nil, errorx.New(errorx.BadRequest, "Invalid user_id")
	}

	if !userQuest.IsCompleted {
		return &DistributeResult{Success: false, Reason: ReasonNotCompleted}, nil
	}

	if userQuest.RewardClaimed {
		return &DistributeResult{Success: false, Reason: ReasonAlreadyClaimed}, nil
	}

	user, err := d.userRepo.GetByID(ctx, userQuest.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userQuest.UserID, err)
		return &DistributeResult{Success: false, Reason: err.Error()}, nil
	}

	previous, err := d.rewardDistributionRepo.CountByUserAndQuest(ctx, userQuest.UserID, quest.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count previous distributions: %v", err)
		return &DistributeResult{Success: false, Reason: err.Error()}, nil
	}

	now := d.now()
	completedAt := now
	if userQuest.CompletedAt.Valid {
		completedAt = userQuest.CompletedAt.Time
	}

	rewards, breakdown, err := d.engine.CalculateFinalReward(quest, Context{
		CharacterClass:    user.CharacterClass,
		StreakDays:        user.StreakDays,
		StartedAt:         userQuest.StartedAt,
		CompletedAt:       completedAt,
		IsFirstCompletion: previous == 0,
		IsPerfect:         userQuest.IsPerfect,
	})
	if err != nil {
		return nil, err
	}

	totalXP, reason := d.persist(ctx, userQuest, rewards, breakdown, now)
	if reason != "" {
		return &DistributeResult{Success: false, Reason: reason}, nil
	}

	userQuest.RewardClaimed = true
	userQuest.RewardClaimedAt.Valid = true
	userQuest.RewardClaimedAt.Time = now

	common.PromCounters[common.RewardDistributedTotal].
		WithLabelValues(enum.ToString(quest.QuestType)).Inc()

	d.publish(ctx, d.engine.GenerateRewardNotification(userQuest.UserID, quest.ID, quest.Title, rewards))
	for _, milestone := range CrossedMilestones(d.milestones, totalXP-rewards.XP, totalXP) {
		notification := d.engine.GenerateRewardNotification(
			userQuest.UserID, quest.ID, quest.Title, rewards, entity.NotificationMilestone)
		notification.Data["milestone"] = milestone
		d.publish(ctx, notification)
	}

	return &DistributeResult{Success: true, Rewards: &rewards, Breakdown: breakdown}, nil
}

// persist runs the claim, the ledger credit and the distribution record in
// one transaction. It returns the user's total XP after the credit and the
// failure reason, or an empty string.
func (d *Distributor) persist(
	ctx context.Context,
	userQuest *entity.UserQuest,
	rewards model.QuestReward,
	breakdown Breakdown,
	now time.Time,
) (int64, string) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userQuestRepo.ClaimReward(ctx, userQuest.ID, now); err != nil {
		if errors.Is(err, repository.ErrNotAffected) {
			return 0, ReasonAlreadyClaimed
		}

		xcontext.Logger(ctx).Errorf("Cannot claim reward of user quest %s: %v", userQuest.ID, err)
		return 0, err.Error()
	}

	totalXP, err := d.userRepo.CreditReward(ctx, userQuest.UserID, rewards.XP, rewards.Commission)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit reward to user %s: %v", userQuest.UserID, err)
		return 0, err.Error()
	}

	multipliers := entity.Map{}
	for k, v := range breakdown.Map() {
		multipliers[k] = v
	}

	err = d.rewardDistributionRepo.Create(ctx, &entity.RewardDistribution{
		Base:        entity.Base{ID: uuid.NewString()},
		UserQuestID: userQuest.ID,
		UserID:      userQuest.UserID,
		QuestID:     userQuest.QuestID,
		XP:          rewards.XP,
		Commission:  rewards.Commission,
		Multipliers: multipliers,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward distribution: %v", err)
		return 0, err.Error()
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit reward distribution: %v", err)
		return 0, err.Error()
	}

	return totalXP, ""
}

func (d *Distributor) publish(ctx context.Context, notification model.Notification) {
	if d.publisher == nil {
		return
	}

	b, err := json.Marshal(notification)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal notification: %v", err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.NotificationTopic
	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(notification.UserID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s notification: %v", notification.NotificationType, err)
	}
}
