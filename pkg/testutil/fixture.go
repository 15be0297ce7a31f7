package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
)

var (
	Organization1 = "1d1c6c8e-8b0e-4b3f-a5a4-0d6a7f1f6a01"
	Organization2 = "1d1c6c8e-8b0e-4b3f-a5a4-0d6a7f1f6a02"

	FixtureTime = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
)

// Users
var (
	User1 = &entity.User{
		Base:           entity.Base{ID: "5b1f8a4e-3c2d-4e8f-9a7b-000000000001"},
		Name:           "user1",
		CharacterClass: entity.ClassScout,
		Level:          5,
	}

	User2 = &entity.User{
		Base:           entity.Base{ID: "5b1f8a4e-3c2d-4e8f-9a7b-000000000002"},
		Name:           "user2",
		CharacterClass: entity.ClassSage,
		Level:          10,
		StreakDays:     7,
	}

	User3 = &entity.User{
		Base:           entity.Base{ID: "5b1f8a4e-3c2d-4e8f-9a7b-000000000003"},
		Name:           "user3",
		CharacterClass: entity.ClassChampion,
		Level:          2,
		TotalXP:        950,
		StreakDays:     30,
	}

	User4 = &entity.User{
		Base:           entity.Base{ID: "5b1f8a4e-3c2d-4e8f-9a7b-000000000004"},
		Name:           "user4",
		CharacterClass: entity.ClassMerchant,
		Level:          8,
	}

	Users = []*entity.User{User1, User2, User3, User4}
)

// Quests
var (
	Quest1 = &entity.Quest{
		Base:             entity.Base{ID: "9c0e7d6b-2a1f-4c3e-8d9a-000000000001"},
		OrganizationID:   Organization1,
		Title:            "Invite a friend",
		QuestType:        entity.QuestDaily,
		Difficulty:       entity.DifficultyEasy,
		TargetType:       "referrals",
		TargetValue:      1,
		RewardXP:         100,
		RewardCommission: 10,
		IsActive:         true,
	}

	Quest2 = &entity.Quest{
		Base:             entity.Base{ID: "9c0e7d6b-2a1f-4c3e-8d9a-000000000002"},
		OrganizationID:   Organization1,
		Title:            "Close five deals",
		QuestType:        entity.QuestWeekly,
		Difficulty:       entity.DifficultyHard,
		TargetType:       "conversions",
		TargetValue:      5,
		RewardXP:         200,
		RewardCommission: 20.5,
		IsActive:         true,
	}

	Quests = []*entity.Quest{Quest1, Quest2}
)

// User quests
var (
	// UserQuest1 is completed but not claimed yet.
	UserQuest1 = &entity.UserQuest{
		Base:        entity.Base{ID: "0f4e2b7c-6d5a-4e3b-9c8d-000000000001"},
		UserID:      User1.ID,
		QuestID:     Quest1.ID,
		Progress:    1,
		IsCompleted: true,
		StartedAt:   FixtureTime.Add(-2 * time.Hour),
		CompletedAt: sql.NullTime{Valid: true, Time: FixtureTime},
	}

	// UserQuest2 is in progress.
	UserQuest2 = &entity.UserQuest{
		Base:      entity.Base{ID: "0f4e2b7c-6d5a-4e3b-9c8d-000000000002"},
		UserID:    User2.ID,
		QuestID:   Quest1.ID,
		StartedAt: FixtureTime.Add(-time.Hour),
	}

	// UserQuest3 was claimed already.
	UserQuest3 = &entity.UserQuest{
		Base:            entity.Base{ID: "0f4e2b7c-6d5a-4e3b-9c8d-000000000003"},
		UserID:          User3.ID,
		QuestID:         Quest1.ID,
		Progress:        1,
		IsCompleted:     true,
		StartedAt:       FixtureTime.Add(-48 * time.Hour),
		CompletedAt:     sql.NullTime{Valid: true, Time: FixtureTime.Add(-47 * time.Hour)},
		RewardClaimed:   true,
		RewardClaimedAt: sql.NullTime{Valid: true, Time: FixtureTime.Add(-47 * time.Hour)},
	}

	// UserQuest4 is completed perfectly within 30 minutes.
	UserQuest4 = &entity.UserQuest{
		Base:        entity.Base{ID: "0f4e2b7c-6d5a-4e3b-9c8d-000000000004"},
		UserID:      User2.ID,
		QuestID:     Quest2.ID,
		Progress:    5,
		IsCompleted: true,
		StartedAt:   FixtureTime.Add(-30 * time.Minute),
		CompletedAt: sql.NullTime{Valid: true, Time: FixtureTime},
		IsPerfect:   true,
	}

	// UserQuest5 is completed by user3 near the first milestone.
	UserQuest5 = &entity.UserQuest{
		Base:        entity.Base{ID: "0f4e2b7c-6d5a-4e3b-9c8d-000000000005"},
		UserID:      User3.ID,
		QuestID:     Quest2.ID,
		Progress:    5,
		IsCompleted: true,
		StartedAt:   FixtureTime.Add(-72 * time.Hour),
		CompletedAt: sql.NullTime{Valid: true, Time: FixtureTime},
	}

	UserQuests = []*entity.UserQuest{UserQuest1, UserQuest2, UserQuest3, UserQuest4, UserQuest5}
)

// Member performance of Organization1
var (
	Performance1 = &entity.MemberPerformance{
		UserID:              User1.ID,
		OrganizationID:      Organization1,
		TotalReferrals:      10,
		TotalCommission:     100,
		ConversionRate:      0.2,
		EngagementScore:     50,
		QuestCompletionRate: 80,
		RetentionRate:       90,
		CharacterClass:      entity.ClassScout,
		Level:               5,
		JoinedAt:            FixtureTime.AddDate(0, -3, 0),
		LastActiveAt:        FixtureTime,
	}

	Performance2 = &entity.MemberPerformance{
		UserID:              User2.ID,
		OrganizationID:      Organization1,
		TotalReferrals:      20,
		TotalCommission:     50,
		ConversionRate:      0.5,
		EngagementScore:     80,
		QuestCompletionRate: 60,
		RetentionRate:       70,
		CharacterClass:      entity.ClassSage,
		Level:               10,
		JoinedAt:            FixtureTime.AddDate(0, -6, 0),
		LastActiveAt:        FixtureTime,
	}

	Performance3 = &entity.MemberPerformance{
		UserID:              User3.ID,
		OrganizationID:      Organization1,
		TotalReferrals:      5,
		TotalCommission:     300,
		ConversionRate:      0.1,
		EngagementScore:     20,
		QuestCompletionRate: 40,
		RetentionRate:       50,
		CharacterClass:      entity.ClassChampion,
		Level:               2,
		JoinedAt:            FixtureTime.AddDate(0, -1, 0),
		LastActiveAt:        FixtureTime,
	}

	Performance4 = &entity.MemberPerformance{
		UserID:              User4.ID,
		OrganizationID:      Organization1,
		TotalReferrals:      20,
		TotalCommission:     0,
		ConversionRate:      0,
		EngagementScore:     10,
		QuestCompletionRate: 0,
		RetentionRate:       0,
		CharacterClass:      entity.ClassMerchant,
		Level:               8,
		JoinedAt:            FixtureTime.AddDate(0, 0, -7),
		LastActiveAt:        FixtureTime,
	}

	// Performance5 is the only member of Organization2.
	Performance5 = &entity.MemberPerformance{
		UserID:          User1.ID,
		OrganizationID:  Organization2,
		TotalReferrals:  3,
		TotalCommission: 30,
		EngagementScore: 40,
		CharacterClass:  entity.ClassScout,
		Level:           5,
		JoinedAt:        FixtureTime.AddDate(0, -1, 0),
		LastActiveAt:    FixtureTime,
	}

	Performances = []*entity.MemberPerformance{
		Performance1, Performance2, Performance3, Performance4, Performance5,
	}
)

// Leaderboards
var (
	Leaderboard1 = &entity.Leaderboard{
		Base:           entity.Base{ID: "3a9f5c1d-7e6b-4a2c-8f0e-000000000001"},
		OrganizationID: Organization1,
		Name:           "Overall",
		Category:       entity.CategoryOverall,
		Timeframe:      entity.TimeframeWeekly,
		Enabled:        true,
	}

	// Leaderboard2 only keeps members of level 5 or more and shows the top 2.
	Leaderboard2 = &entity.Leaderboard{
		Base:           entity.Base{ID: "3a9f5c1d-7e6b-4a2c-8f0e-000000000002"},
		OrganizationID: Organization1,
		Name:           "Top referrers",
		Category:       entity.CategoryReferrals,
		Timeframe:      entity.TimeframeMonthly,
		Filters:        entity.Map{"min_level": 5},
		MaxEntries:     2,
		Enabled:        true,
	}

	// Leaderboard3 is disabled.
	Leaderboard3 = &entity.Leaderboard{
		Base:           entity.Base{ID: "3a9f5c1d-7e6b-4a2c-8f0e-000000000003"},
		OrganizationID: Organization1,
		Name:           "Retention",
		Category:       entity.CategoryRetention,
		Timeframe:      entity.TimeframeAllTime,
		Enabled:        false,
	}

	Leaderboard4 = &entity.Leaderboard{
		Base:           entity.Base{ID: "3a9f5c1d-7e6b-4a2c-8f0e-000000000004"},
		OrganizationID: Organization2,
		Name:           "Commission",
		Category:       entity.CategoryCommission,
		Timeframe:      entity.TimeframeDaily,
		Enabled:        true,
	}

	Leaderboards = []*entity.Leaderboard{Leaderboard1, Leaderboard2, Leaderboard3, Leaderboard4}
)

// CreateFixtureDb inserts copies of the fixtures above into the database of
// ctx, so tests may freely mutate the returned rows.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertQuests(ctx)
	InsertUserQuests(ctx)
	InsertMemberPerformances(ctx)
	InsertLeaderboards(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range Users {
		u := *user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}
}

func InsertQuests(ctx context.Context) {
	questRepo := repository.NewQuestRepository()
	for _, quest := range Quests {
		q := *quest
		if err := questRepo.Create(ctx, &q); err != nil {
			panic(err)
		}
	}
}

func InsertUserQuests(ctx context.Context) {
	userQuestRepo := repository.NewUserQuestRepository()
	for _, userQuest := range UserQuests {
		uq := *userQuest
		if err := userQuestRepo.Create(ctx, &uq); err != nil {
			panic(err)
		}
	}
}

func InsertMemberPerformances(ctx context.Context) {
	memberPerformanceRepo := repository.NewMemberPerformanceRepository()
	for _, performance := range Performances {
		p := *performance
		if err := memberPerformanceRepo.Upsert(ctx, &p); err != nil {
			panic(err)
		}
	}
}

func InsertLeaderboards(ctx context.Context) {
	leaderboardRepo := repository.NewLeaderboardRepository()
	for _, leaderboard := range Leaderboards {
		l := *leaderboard
		if err := leaderboardRepo.Create(ctx, &l); err != nil {
			panic(err)
		}
	}
}
