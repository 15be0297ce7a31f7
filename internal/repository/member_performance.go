package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type MemberPerformanceRepository interface {
	Upsert(ctx context.Context, performance *entity.MemberPerformance) error

	// GetByOrganization returns the cohort of an organization ordered by
	// user id.
	GetByOrganization(ctx context.Context, organizationID string) ([]entity.MemberPerformance, error)
}

type memberPerformanceRepository struct{}

func NewMemberPerformanceRepository() MemberPerformanceRepository {
	return &memberPerformanceRepository{}
}

func (r *memberPerformanceRepository) Upsert(ctx context.Context, performance *entity.MemberPerformance) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(performance).Error
}

func (r *memberPerformanceRepository) GetByOrganization(
	ctx context.Context, organizationID string,
) ([]entity.MemberPerformance, error) {
	var result []entity.MemberPerformance
	err := xcontext.DB(ctx).
		Where("organization_id=?", organizationID).
		Order("user_id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
