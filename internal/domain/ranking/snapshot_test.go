package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type memoryRedis struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryRedis() (*memoryRedis, *testutil.MockRedisClient) {
	m := &memoryRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
	return m, &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			_, ok := m.data[key]
			return ok, nil
		},
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			b, err := json.Marshal(obj)
			if err != nil {
				return err
			}

			m.data[key] = b
			m.ttls[key] = ttl
			return nil
		},
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			b, ok := m.data[key]
			if !ok {
				return errors.New("not found")
			}

			return json.Unmarshal(b, v)
		},
	}
}

func TestEngine_RefreshLeaderboard(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	memory, redisClient := newMemoryRedis()
	engine := newTestEngine(redisClient)

	entries, err := engine.RefreshLeaderboard(ctx, testutil.Leaderboard2.ID)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User2.ID, testutil.User4.ID}, userIDs(entries))

	// History covers the whole filtered cohort, not only the shown entries.
	ranks, err := repository.NewRankingHistoryRepository().GetRanks(ctx, testutil.Leaderboard2.ID, "2023-06-15")
	require.NoError(t, err)
	require.Equal(t, map[string]int{
		testutil.User2.ID: 1,
		testutil.User4.ID: 2,
		testutil.User1.ID: 3,
	}, ranks)

	key := common.RedisKeyLeaderboardSnapshot(testutil.Leaderboard2.ID)
	require.Equal(t, 24*time.Hour, memory.ttls[key])

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(memory.data[key], &snapshot))
	require.Equal(t, testutil.Leaderboard2.ID, snapshot.LeaderboardID)
	require.Equal(t, 3, snapshot.Total)
	require.Equal(t, []string{testutil.User2.ID, testutil.User4.ID}, userIDs(snapshot.Entries))

	_, err = engine.RefreshLeaderboard(ctx, "unknown")
	require.True(t, errorx.IsCode(err, errorx.NotFound))
}

func TestEngine_RefreshLeaderboard_CacheFailure(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	engine := newTestEngine(&testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			return errors.New("connection refused")
		},
	})

	entries, err := engine.RefreshLeaderboard(ctx, testutil.Leaderboard1.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)
}

func TestEngine_GetSnapshot(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	memory, redisClient := newMemoryRedis()
	engine := newTestEngine(redisClient)

	// Missing snapshot is built on demand.
	entries, total, err := engine.GetSnapshot(ctx, testutil.Leaderboard1.ID, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Equal(t, []string{testutil.User3.ID, testutil.User1.ID}, userIDs(entries))
	require.Len(t, memory.data, 1)

	// Later reads come from the cache only.
	cached := Snapshot{
		LeaderboardID: testutil.Leaderboard1.ID,
		Total:         3,
		Entries: []model.RankingEntry{
			{UserID: "a", Rank: 1}, {UserID: "b", Rank: 2}, {UserID: "c", Rank: 3},
		},
	}
	b, err := json.Marshal(cached)
	require.NoError(t, err)
	memory.data[common.RedisKeyLeaderboardSnapshot(testutil.Leaderboard1.ID)] = b

	entries, total, err = engine.GetSnapshot(ctx, testutil.Leaderboard1.ID, 1, 5)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{"b", "c"}, userIDs(entries))

	entries, _, err = engine.GetSnapshot(ctx, testutil.Leaderboard1.ID, 10, 5)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEngine_GetSnapshot_MaxEntries(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	_, redisClient := newMemoryRedis()
	engine := newTestEngine(redisClient)

	// Built on a miss.
	entries, total, err := engine.GetSnapshot(ctx, testutil.Leaderboard2.ID, 0, 100)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{testutil.User2.ID, testutil.User4.ID}, userIDs(entries))

	// Read back from the cache.
	entries, total, err = engine.GetSnapshot(ctx, testutil.Leaderboard2.ID, 0, 100)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []string{testutil.User2.ID, testutil.User4.ID}, userIDs(entries))

	entries, _, err = engine.GetSnapshot(ctx, testutil.Leaderboard2.ID, 2, 100)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEngine_GetSnapshot_RedisFailure(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	engine := newTestEngine(&testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return false, errors.New("connection refused")
		},
	})

	_, _, err := engine.GetSnapshot(ctx, testutil.Leaderboard1.ID, 0, 10)
	require.Equal(t, errorx.Unknown, err)
}
