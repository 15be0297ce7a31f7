package ranking

import (
	"github.com/fatih/structs"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var classMultipliers = map[entity.CharacterClass]decimal.Decimal{
	entity.ClassScout:    decimal.RequireFromString("1.2"),
	entity.ClassSage:     decimal.RequireFromString("1.5"),
	entity.ClassChampion: decimal.RequireFromString("1.3"),
	entity.ClassMerchant: decimal.RequireFromString("1.1"),
}

var defaultOverallWeights = map[entity.LeaderboardCategory]float64{
	entity.CategoryReferrals:  0.3,
	entity.CategoryCommission: 0.4,
	entity.CategoryEngagement: 0.2,
	entity.CategoryQuests:     0.1,
	entity.CategoryRetention:  0.1,
}

type metrics struct {
	TotalReferrals      int64   `structs:"total_referrals"`
	TotalCommission     float64 `structs:"total_commission"`
	ConversionRate      float64 `structs:"conversion_rate"`
	EngagementScore     float64 `structs:"engagement_score"`
	QuestCompletionRate float64 `structs:"quest_completion_rate"`
	RetentionRate       float64 `structs:"retention_rate"`
}

func metricsOf(p *entity.MemberPerformance) map[string]any {
	return structs.Map(metrics{
		TotalReferrals:      p.TotalReferrals,
		TotalCommission:     p.TotalCommission,
		ConversionRate:      p.ConversionRate,
		EngagementScore:     p.EngagementScore,
		QuestCompletionRate: p.QuestCompletionRate,
		RetentionRate:       p.RetentionRate,
	})
}

func metricValue(p *entity.MemberPerformance, category entity.LeaderboardCategory) decimal.Decimal {
	switch category {
	case entity.CategoryReferrals:
		return decimal.NewFromInt(p.TotalReferrals)
	case entity.CategoryCommission:
		return decimal.NewFromFloat(p.TotalCommission)
	case entity.CategoryEngagement:
		return decimal.NewFromFloat(p.EngagementScore)
	case entity.CategoryQuests:
		return decimal.NewFromFloat(p.QuestCompletionRate)
	case entity.CategoryRetention:
		return decimal.NewFromFloat(p.RetentionRate)
	}

	return decimal.Zero
}

// rawScore is the category score before class and timeframe multipliers.
func rawScore(p *entity.MemberPerformance, cfg Config) decimal.Decimal {
	if cfg.Category != entity.CategoryOverall {
		weight, ok := cfg.Weights[string(cfg.Category)]
		if !ok {
			weight = 1
		}

		return metricValue(p, cfg.Category).Mul(decimal.NewFromFloat(weight))
	}

	score := decimal.Zero
	for category, weight := range defaultOverallWeights {
		if w, ok := cfg.Weights[string(category)]; ok {
			weight = w
		}

		score = score.Add(metricValue(p, category).Mul(decimal.NewFromFloat(weight)))
	}

	return score
}

func classMultiplier(class entity.CharacterClass) decimal.Decimal {
	if m, ok := classMultipliers[class]; ok {
		return m
	}

	return decimal.NewFromInt(1)
}

// timeframeWeight is reserved for recency weighting.
func timeframeWeight(entity.LeaderboardTimeframe) decimal.Decimal {
	return decimal.NewFromInt(1)
}

func score(p *entity.MemberPerformance, cfg Config) float64 {
	return rawScore(p, cfg).
		Mul(classMultiplier(p.CharacterClass)).
		Mul(timeframeWeight(cfg.Timeframe)).
		InexactFloat64()
}

func (f Filters) accept(p *entity.MemberPerformance) bool {
	if f.MinLevel != nil && p.Level < *f.MinLevel {
		return false
	}

	if len(f.CharacterClasses) > 0 && !slices.Contains(f.CharacterClasses, string(p.CharacterClass)) {
		return false
	}

	if f.MinActivity != nil && p.EngagementScore < *f.MinActivity {
		return false
	}

	return true
}
