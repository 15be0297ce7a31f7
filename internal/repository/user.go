package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// CreditReward adds the reward to the user's ledger and returns the total
	// XP after the credit. Run it in a transaction to read a consistent total.
	CreditReward(ctx context.Context, id string, xp int64, commission float64) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) CreditReward(ctx context.Context, id string, xp int64, commission float64) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"total_xp":         gorm.Expr("total_xp+?", xp),
			"total_commission": gorm.Expr("total_commission+?", commission),
		})
	if err := tx.Error; err != nil {
		return 0, err
	}

	if tx.RowsAffected == 0 {
		return 0, ErrNotAffected
	}

	var user entity.User
	if err := xcontext.DB(ctx).Select("total_xp").Take(&user, "id=?", id).Error; err != nil {
		return 0, err
	}

	return user.TotalXP, nil
}
