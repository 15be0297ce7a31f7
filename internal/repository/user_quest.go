package repository

import (
	"context"
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

type UserQuestRepository interface {
	Create(ctx context.Context, userQuest *entity.UserQuest) error
	GetByID(ctx context.Context, id string) (*entity.UserQuest, error)

	// ClaimReward flips reward_claimed of a completed user quest in a single
	// conditional update. It returns ErrNotAffected if the quest is not
	// completed or was already claimed.
	ClaimReward(ctx context.Context, id string, claimedAt time.Time) error
}

type userQuestRepository struct{}

func NewUserQuestRepository() UserQuestRepository {
	return &userQuestRepository{}
}

func (r *userQuestRepository) Create(ctx context.Context, userQuest *entity.UserQuest) error {
	return xcontext.DB(ctx).Create(userQuest).Error
}

func (r *userQuestRepository) GetByID(ctx context.Context, id string) (*entity.UserQuest, error) {
	var result entity.UserQuest
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userQuestRepository) ClaimReward(ctx context.Context, id string, claimedAt time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserQuest{}).
		Where("id=? AND is_completed=? AND reward_claimed=?", id, true, false).
		Updates(map[string]any{
			"reward_claimed":    true,
			"reward_claimed_at": claimedAt,
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrNotAffected
	}

	return nil
}
