package ranking

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/questx-lab/questboard/pkg/enum"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/questx-lab/questboard/pkg/xredis"
)

type RankChange string

var (
	ChangeUp   = enum.New(RankChange("up"))
	ChangeDown = enum.New(RankChange("down"))
	ChangeNew  = enum.New(RankChange("new"))
	ChangeSame = enum.New(RankChange("same"))
)

type Engine struct {
	memberPerformanceRepo repository.MemberPerformanceRepository
	rankingHistoryRepo    repository.RankingHistoryRepository
	leaderboardRepo       repository.LeaderboardRepository
	redisClient           xredis.Client

	validate *validator.Validate
	now      func() time.Time
}

func NewEngine(
	memberPerformanceRepo repository.MemberPerformanceRepository,
	rankingHistoryRepo repository.RankingHistoryRepository,
	leaderboardRepo repository.LeaderboardRepository,
	redisClient xredis.Client,
) *Engine {
	return &Engine{
		memberPerformanceRepo: memberPerformanceRepo,
		rankingHistoryRepo:    rankingHistoryRepo,
		leaderboardRepo:       leaderboardRepo,
		redisClient:           redisClient,
		validate:              newValidator(),
		now:                   time.Now,
	}
}

// CalculateLeaderboard ranks the cohort of cfg.OrganizationID and returns at
// most cfg.MaxEntries entries. Ranks always refer to the whole filtered
// cohort.
func (e *Engine) CalculateLeaderboard(ctx context.Context, cfg Config) ([]model.RankingEntry, error) {
	entries, err := e.rank(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return truncate(entries, cfg.MaxEntries), nil
}

func (e *Engine) rank(ctx context.Context, cfg Config) ([]model.RankingEntry, error) {
	if err := validateConfig(e.validate, cfg); err != nil {
		return nil, err
	}

	cohort, err := e.memberPerformanceRepo.GetByOrganization(ctx, cfg.OrganizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member performance of %s: %v", cfg.OrganizationID, err)
		return nil, errorx.Unknown
	}

	entries := []model.RankingEntry{}
	for i := range cohort {
		p := &cohort[i]
		if !cfg.Filters.accept(p) {
			continue
		}

		entries = append(entries, model.RankingEntry{
			UserID:         p.UserID,
			Score:          score(p, cfg),
			CharacterClass: string(p.CharacterClass),
			Level:          p.Level,
			Metrics:        metricsOf(p),
		})
	}

	if len(entries) == 0 {
		return entries, nil
	}

	// The cohort is read ordered by user id, so ties keep that order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	previousRanks := map[string]int{}
	if cfg.ID != "" {
		previousRanks, err = e.rankingHistoryRepo.GetRanks(ctx, cfg.ID, dateutil.YesterdayKey(e.now()))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get ranking history of %s: %v", cfg.ID, err)
			return nil, errorx.Unknown
		}
	}

	for i := range entries {
		entries[i].Rank = i + 1
		previous, ok := previousRanks[entries[i].UserID]
		if !ok {
			entries[i].Change = string(ChangeNew)
			continue
		}

		entries[i].PreviousRank = &previous
		entries[i].Change = string(rankChange(previous, entries[i].Rank))
	}

	return entries, nil
}

func rankChange(previous, current int) RankChange {
	switch {
	case previous > current:
		return ChangeUp
	case previous < current:
		return ChangeDown
	default:
		return ChangeSame
	}
}

func truncate(entries []model.RankingEntry, maxEntries int) []model.RankingEntry {
	if maxEntries > 0 && len(entries) > maxEntries {
		return entries[:maxEntries]
	}

	return entries
}
