package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
)

// SampleMemberPerformance creates a member performance row of organizationID
// for a random user. The sample can be overwritten by non-zero fields of
// init.
func SampleMemberPerformance(
	ctx context.Context, organizationID string, init *entity.MemberPerformance,
) *entity.MemberPerformance {
	sample := &entity.MemberPerformance{
		UserID:         uuid.NewString(),
		OrganizationID: organizationID,
		CharacterClass: entity.ClassScout,
		Level:          1,
		JoinedAt:       time.Now(),
		LastActiveAt:   time.Now(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewMemberPerformanceRepository().Upsert(ctx, sample); err != nil {
		panic(err)
	}

	return sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
