package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/questx-lab/questboard/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func newTestEngine(redisClient xredis.Client) *Engine {
	if redisClient == nil {
		redisClient = &testutil.MockRedisClient{}
	}

	e := NewEngine(
		repository.NewMemberPerformanceRepository(),
		repository.NewRankingHistoryRepository(),
		repository.NewLeaderboardRepository(),
		redisClient,
	)
	e.now = func() time.Time { return testutil.FixtureTime }
	return e
}

func overallConfig() Config {
	return Config{
		ID:             testutil.Leaderboard1.ID,
		Category:       entity.CategoryOverall,
		Timeframe:      entity.TimeframeWeekly,
		OrganizationID: testutil.Organization1,
		Enabled:        true,
	}
}

func userIDs(entries []model.RankingEntry) []string {
	ids := []string{}
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	return ids
}

func requireDenseRanks(t *testing.T, entries []model.RankingEntry) {
	for i, e := range entries {
		require.Equal(t, i+1, e.Rank)
	}
}

func TestEngine_CalculateLeaderboard_Overall(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	entries, err := newTestEngine(nil).CalculateLeaderboard(ctx, overallConfig())
	require.NoError(t, err)
	require.Equal(t, []string{
		testutil.User3.ID, testutil.User1.ID, testutil.User2.ID, testutil.User4.ID,
	}, userIDs(entries))
	requireDenseRanks(t, entries)

	require.Equal(t, 174.85, entries[0].Score)
	require.Equal(t, 84.0, entries[1].Score)
	require.Equal(t, 82.5, entries[2].Score)
	require.Equal(t, 8.8, entries[3].Score)

	for _, e := range entries {
		require.Equal(t, "new", e.Change)
		require.Nil(t, e.PreviousRank)
	}

	require.Equal(t, "champion", entries[0].CharacterClass)
	require.Equal(t, int64(5), entries[0].Metrics["total_referrals"])
	require.Equal(t, 300.0, entries[0].Metrics["total_commission"])
}

func TestEngine_CalculateLeaderboard_Category(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	engine := newTestEngine(nil)

	cfg := overallConfig()
	cfg.Category = entity.CategoryReferrals
	entries, err := engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{
		testutil.User2.ID, testutil.User4.ID, testutil.User1.ID, testutil.User3.ID,
	}, userIDs(entries))
	require.Equal(t, []float64{30, 22, 12, 6.5}, []float64{
		entries[0].Score, entries[1].Score, entries[2].Score, entries[3].Score,
	})

	cfg.Weights = map[string]float64{"referrals": 2}
	entries, err = engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, 60.0, entries[0].Score)

	cfg.Category = entity.CategoryRetention
	cfg.Weights = nil
	entries, err = engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, entries[0].UserID)
	require.Equal(t, 108.0, entries[0].Score)
}

func TestEngine_CalculateLeaderboard_OverallWeights(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	// Only commission is overridden, other metrics keep the default blend.
	cfg := overallConfig()
	cfg.Weights = map[string]float64{"commission": 0}

	entries, err := newTestEngine(nil).CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, entries[0].UserID)
	require.Equal(t, 52.5, entries[0].Score)
}

func TestEngine_CalculateLeaderboard_EmptyCohort(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	for _, category := range []entity.LeaderboardCategory{
		entity.CategoryOverall, entity.CategoryReferrals, entity.CategoryRetention,
	} {
		cfg := overallConfig()
		cfg.Category = category
		cfg.OrganizationID = uuid.NewString()

		entries, err := newTestEngine(nil).CalculateLeaderboard(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, entries)
		require.Empty(t, entries)
	}
}

func TestEngine_CalculateLeaderboard_Validation(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	testCases := []struct {
		name    string
		modify  func(*Config)
		message string
	}{
		{
			name:    "category",
			modify:  func(c *Config) { c.Category = "popularity" },
			message: "Invalid category",
		},
		{
			name:    "timeframe",
			modify:  func(c *Config) { c.Timeframe = "yearly" },
			message: "Invalid timeframe",
		},
		{
			name:    "organization",
			modify:  func(c *Config) { c.OrganizationID = "org1" },
			message: "Invalid organization_id",
		},
		{
			name:    "empty organization",
			modify:  func(c *Config) { c.OrganizationID = "" },
			message: "Invalid organization_id",
		},
		{
			name: "first failure wins",
			modify: func(c *Config) {
				c.Category = ""
				c.Timeframe = ""
				c.OrganizationID = ""
			},
			message: "Invalid category",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := overallConfig()
			tc.modify(&cfg)

			_, err := newTestEngine(nil).CalculateLeaderboard(ctx, cfg)
			require.Error(t, err)
			require.True(t, errorx.IsCode(err, errorx.BadRequest))
			require.Equal(t, tc.message, err.Error())
		})
	}
}

func TestEngine_CalculateLeaderboard_Filters(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	engine := newTestEngine(nil)

	minLevel := 5
	cfg := overallConfig()
	cfg.Filters = Filters{MinLevel: &minLevel}
	entries, err := engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User1.ID, testutil.User2.ID, testutil.User4.ID}, userIDs(entries))
	requireDenseRanks(t, entries)
	for _, e := range entries {
		require.GreaterOrEqual(t, e.Level, minLevel)
	}

	cfg.Filters = Filters{CharacterClasses: []string{"sage", "merchant"}}
	entries, err = engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User2.ID, testutil.User4.ID}, userIDs(entries))

	minActivity := 50.0
	cfg.Filters = Filters{MinActivity: &minActivity}
	entries, err = engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User1.ID, testutil.User2.ID}, userIDs(entries))

	// All filters must pass.
	cfg.Filters = Filters{MinLevel: &minLevel, CharacterClasses: []string{"scout"}, MinActivity: &minActivity}
	entries, err = engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User1.ID}, userIDs(entries))

	// Everyone filtered out.
	minLevel = 100
	cfg.Filters = Filters{MinLevel: &minLevel}
	entries, err = engine.CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEngine_CalculateLeaderboard_Truncate(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	cfg := overallConfig()
	cfg.MaxEntries = 2
	entries, err := newTestEngine(nil).CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User3.ID, testutil.User1.ID}, userIDs(entries))
	requireDenseRanks(t, entries)

	cfg.MaxEntries = 10
	entries, err = newTestEngine(nil).CalculateLeaderboard(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, entries, 4)
}

func TestEngine_CalculateLeaderboard_Ties(t *testing.T) {
	ctx := testutil.NewMockContext()
	organizationID := uuid.NewString()

	ids := []string{
		"00000000-0000-4000-8000-000000000003",
		"00000000-0000-4000-8000-000000000001",
		"00000000-0000-4000-8000-000000000002",
	}
	for _, id := range ids {
		testutil.SampleMemberPerformance(ctx, organizationID, &entity.MemberPerformance{
			UserID:         id,
			TotalReferrals: 7,
		})
	}

	cfg := overallConfig()
	cfg.ID = ""
	cfg.Category = entity.CategoryReferrals
	cfg.OrganizationID = organizationID

	for i := 0; i < 3; i++ {
		entries, err := newTestEngine(nil).CalculateLeaderboard(ctx, cfg)
		require.NoError(t, err)
		require.Equal(t, []string{ids[1], ids[2], ids[0]}, userIDs(entries))
		requireDenseRanks(t, entries)
	}
}

func TestEngine_CalculateLeaderboard_Change(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	historyRepo := repository.NewRankingHistoryRepository()
	yesterday := "2023-06-14"
	for userID, rank := range map[string]int{
		testutil.User1.ID: 1,
		testutil.User2.ID: 4,
		testutil.User3.ID: 1,
	} {
		require.NoError(t, historyRepo.Upsert(ctx, &entity.RankingHistory{
			LeaderboardID: testutil.Leaderboard1.ID,
			UserID:        userID,
			Date:          yesterday,
			Rank:          rank,
		}))
	}

	// Older rows are ignored.
	require.NoError(t, historyRepo.Upsert(ctx, &entity.RankingHistory{
		LeaderboardID: testutil.Leaderboard1.ID,
		UserID:        testutil.User4.ID,
		Date:          "2023-06-01",
		Rank:          1,
	}))

	entries, err := newTestEngine(nil).CalculateLeaderboard(ctx, overallConfig())
	require.NoError(t, err)

	changes := map[string]string{}
	for _, e := range entries {
		changes[e.UserID] = e.Change
	}

	require.Equal(t, map[string]string{
		testutil.User3.ID: "same",
		testutil.User1.ID: "down",
		testutil.User2.ID: "up",
		testutil.User4.ID: "new",
	}, changes)
	require.Equal(t, 1, *entries[1].PreviousRank)
	require.Nil(t, entries[3].PreviousRank)
}

func TestEngine_SaveRankingHistory(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	engine := newTestEngine(nil)

	entries, err := engine.CalculateLeaderboard(ctx, overallConfig())
	require.NoError(t, err)

	engine.SaveRankingHistory(ctx, testutil.Leaderboard1.ID, entries)
	// The same day is overwritten.
	engine.SaveRankingHistory(ctx, testutil.Leaderboard1.ID, entries)

	ranks, err := repository.NewRankingHistoryRepository().GetRanks(ctx, testutil.Leaderboard1.ID, "2023-06-15")
	require.NoError(t, err)
	require.Equal(t, map[string]int{
		testutil.User3.ID: 1,
		testutil.User1.ID: 2,
		testutil.User2.ID: 3,
		testutil.User4.ID: 4,
	}, ranks)

	// Tomorrow these ranks are the previous ones.
	engine.now = func() time.Time { return testutil.FixtureTime.AddDate(0, 0, 1) }
	entries, err = engine.CalculateLeaderboard(ctx, overallConfig())
	require.NoError(t, err)
	for _, e := range entries {
		require.Equal(t, "same", e.Change)
	}
}

func TestEngine_SaveRankingHistory_Failure(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	engine := newTestEngine(nil)

	entries, err := engine.CalculateLeaderboard(ctx, overallConfig())
	require.NoError(t, err)

	require.NoError(t, migratorDropHistory(ctx))
	engine.SaveRankingHistory(ctx, testutil.Leaderboard1.ID, entries)
}

func TestConfigFromEntity(t *testing.T) {
	cfg, err := ConfigFromEntity(&entity.Leaderboard{
		Base:           entity.Base{ID: "id"},
		OrganizationID: testutil.Organization1,
		Category:       entity.CategoryReferrals,
		Timeframe:      entity.TimeframeDaily,
		Weights:        entity.Map{"referrals": 2.5},
		Filters: entity.Map{
			"min_level":         float64(3),
			"character_classes": []any{"scout", "sage"},
			"min_activity":      10.5,
		},
		MaxEntries: 10,
		Enabled:    true,
	})
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"referrals": 2.5}, cfg.Weights)
	require.Equal(t, 3, *cfg.Filters.MinLevel)
	require.Equal(t, []string{"scout", "sage"}, cfg.Filters.CharacterClasses)
	require.Equal(t, 10.5, *cfg.Filters.MinActivity)
	require.Equal(t, 10, cfg.MaxEntries)

	_, err = ConfigFromEntity(&entity.Leaderboard{Filters: entity.Map{"max_level": 3}})
	require.Equal(t, "Invalid filters", err.Error())

	_, err = ConfigFromEntity(&entity.Leaderboard{Weights: entity.Map{"referrals": "a lot"}})
	require.Equal(t, "Invalid weights", err.Error())
}

func migratorDropHistory(ctx context.Context) error {
	return xcontext.DB(ctx).Migrator().DropTable(&entity.RankingHistory{})
}
