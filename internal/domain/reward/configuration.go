package reward

import (
	"time"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/shopspring/decimal"
)

type ClassMultiplier struct {
	XP         decimal.Decimal `json:"xp"`
	Commission decimal.Decimal `json:"commission"`
}

type StreakTier struct {
	MinDays    int             `json:"min_days"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type SpeedTier struct {
	Within     time.Duration   `json:"within"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Configuration holds every multiplier table and cap the engine applies.
type Configuration struct {
	ClassMultipliers      map[entity.CharacterClass]ClassMultiplier `json:"class_multipliers"`
	DifficultyMultipliers map[entity.Difficulty]decimal.Decimal     `json:"difficulty_multipliers"`
	QuestTypeMultipliers  map[entity.QuestType]decimal.Decimal      `json:"quest_type_multipliers"`

	// StreakTiers is sorted by MinDays, the last tier whose MinDays is not
	// greater than the streak wins.
	StreakTiers []StreakTier `json:"streak_tiers"`

	// SpeedTiers is sorted by Within, the first tier whose Within is greater
	// than the elapsed time wins.
	SpeedTiers []SpeedTier `json:"speed_tiers"`

	FirstCompletionMultiplier   decimal.Decimal `json:"first_completion_multiplier"`
	PerfectCompletionMultiplier decimal.Decimal `json:"perfect_completion_multiplier"`

	MaxXP         int64   `json:"max_xp"`
	MaxCommission float64 `json:"max_commission"`
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func DefaultConfiguration() Configuration {
	return Configuration{
		ClassMultipliers: map[entity.CharacterClass]ClassMultiplier{
			entity.ClassScout:    {XP: d("1.1"), Commission: d("1.0")},
			entity.ClassSage:     {XP: d("1.0"), Commission: d("1.2")},
			entity.ClassChampion: {XP: d("1.15"), Commission: d("1.1")},
		},
		DifficultyMultipliers: map[entity.Difficulty]decimal.Decimal{
			entity.DifficultyEasy:   d("1.0"),
			entity.DifficultyMedium: d("1.5"),
			entity.DifficultyHard:   d("2.0"),
			entity.DifficultyEpic:   d("3.0"),
		},
		QuestTypeMultipliers: map[entity.QuestType]decimal.Decimal{
			entity.QuestDaily:   d("1.0"),
			entity.QuestWeekly:  d("2.0"),
			entity.QuestMonthly: d("5.0"),
			entity.QuestSpecial: d("1.0"),
		},
		StreakTiers: []StreakTier{
			{MinDays: 0, Multiplier: d("1.0")},
			{MinDays: 3, Multiplier: d("1.1")},
			{MinDays: 7, Multiplier: d("1.25")},
			{MinDays: 30, Multiplier: d("1.5")},
		},
		SpeedTiers: []SpeedTier{
			{Within: time.Hour, Multiplier: d("1.2")},
			{Within: 6 * time.Hour, Multiplier: d("1.1")},
			{Within: 24 * time.Hour, Multiplier: d("1.05")},
		},
		FirstCompletionMultiplier:   d("1.5"),
		PerfectCompletionMultiplier: d("1.25"),
		MaxXP:                       5000,
		MaxCommission:               500,
	}
}

// ConfigurationFromConfigs returns the default tables with the caps of cfg.
// Zero caps keep the defaults.
func ConfigurationFromConfigs(cfg config.RewardConfigs) Configuration {
	c := DefaultConfiguration()
	if cfg.MaxXP != 0 {
		c.MaxXP = cfg.MaxXP
	}

	if cfg.MaxCommission != 0 {
		c.MaxCommission = cfg.MaxCommission
	}

	return c
}

func ValidateRewardConfiguration(c Configuration) error {
	for class, m := range c.ClassMultipliers {
		if !m.XP.IsPositive() || !m.Commission.IsPositive() {
			return errorx.New(errorx.BadRequest, "Invalid multiplier of class %s", class)
		}
	}

	for difficulty, m := range c.DifficultyMultipliers {
		if !m.IsPositive() {
			return errorx.New(errorx.BadRequest, "Invalid multiplier of difficulty %s", difficulty)
		}
	}

	for questType, m := range c.QuestTypeMultipliers {
		if !m.IsPositive() {
			return errorx.New(errorx.BadRequest, "Invalid multiplier of quest type %s", questType)
		}
	}

	for i, tier := range c.StreakTiers {
		if tier.MinDays < 0 || !tier.Multiplier.IsPositive() {
			return errorx.New(errorx.BadRequest, "Invalid streak tier %d", i)
		}

		if i > 0 && tier.MinDays <= c.StreakTiers[i-1].MinDays {
			return errorx.New(errorx.BadRequest, "Streak tiers must be sorted by min days")
		}
	}

	for i, tier := range c.SpeedTiers {
		if tier.Within <= 0 || !tier.Multiplier.IsPositive() {
			return errorx.New(errorx.BadRequest, "Invalid speed tier %d", i)
		}

		if i > 0 && tier.Within <= c.SpeedTiers[i-1].Within {
			return errorx.New(errorx.BadRequest, "Speed tiers must be sorted by duration")
		}
	}

	if !c.FirstCompletionMultiplier.GreaterThan(one) {
		return errorx.New(errorx.BadRequest, "Invalid first completion multiplier")
	}

	if !c.PerfectCompletionMultiplier.GreaterThan(one) {
		return errorx.New(errorx.BadRequest, "Invalid perfect completion multiplier")
	}

	if c.MaxXP < 0 || c.MaxCommission < 0 {
		return errorx.New(errorx.BadRequest, "Reward limits must not be negative")
	}

	return nil
}
