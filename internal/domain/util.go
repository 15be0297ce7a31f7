package domain

import (
	"github.com/google/uuid"
	"github.com/questx-lab/questboard/pkg/errorx"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

func checkUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid user_id")
	}

	return nil
}

// checkPagination applies the default limit and rejects out of range values.
func checkPagination(offset int, limit *int) error {
	if offset < 0 {
		return errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	if *limit == 0 {
		*limit = defaultLimit
	}

	if *limit < 0 {
		return errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if *limit > maxLimit {
		return errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	return nil
}
