package reward

import (
	"fmt"
	"time"

	"github.com/fatih/structs"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/enum"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/numberutil"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Context describes how a quest was completed.
type Context struct {
	CharacterClass    entity.CharacterClass
	StreakDays        int
	StartedAt         time.Time
	CompletedAt       time.Time
	IsFirstCompletion bool
	IsPerfect         bool
}

// Breakdown records the factor applied by every stage of the pipeline.
type Breakdown struct {
	Difficulty        float64 `structs:"difficulty"`
	QuestType         float64 `structs:"quest_type"`
	ClassXP           float64 `structs:"class_xp"`
	ClassCommission   float64 `structs:"class_commission"`
	Streak            float64 `structs:"streak"`
	Speed             float64 `structs:"speed"`
	FirstCompletion   float64 `structs:"first_completion"`
	PerfectCompletion float64 `structs:"perfect_completion"`
}

func (b Breakdown) Map() map[string]float64 {
	result := map[string]float64{}
	for k, v := range structs.Map(b) {
		result[k] = v.(float64)
	}

	return result
}

// Engine computes quest rewards. XP is rounded half-up to an integer after
// every multiplying stage, except the speed, first completion and perfect
// completion bonuses which round up so that a positive XP always grows.
// Commission is only rounded by RoundMonetaryRewards.
type Engine struct {
	cfg Configuration
}

func NewEngine(cfg Configuration) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) GetRewardConfiguration() Configuration {
	return e.cfg
}

func (e *Engine) CalculateQuestRewards(quest *entity.Quest) model.QuestReward {
	return model.QuestReward{XP: quest.RewardXP, Commission: quest.RewardCommission}
}

func (e *Engine) ApplyCharacterClassMultiplier(r model.QuestReward, class entity.CharacterClass) model.QuestReward {
	m, ok := e.cfg.ClassMultipliers[class]
	if !ok {
		return r
	}

	return multiply(r, m.XP, m.Commission)
}

func (e *Engine) ApplyDifficultyMultiplier(r model.QuestReward, difficulty entity.Difficulty) model.QuestReward {
	return multiply(r, e.difficultyFactor(difficulty), e.difficultyFactor(difficulty))
}

func (e *Engine) ApplyQuestTypeMultiplier(r model.QuestReward, questType entity.QuestType) model.QuestReward {
	return multiply(r, e.questTypeFactor(questType), e.questTypeFactor(questType))
}

func (e *Engine) ApplyStreakBonus(r model.QuestReward, streakDays int) model.QuestReward {
	return multiply(r, e.streakFactor(streakDays), e.streakFactor(streakDays))
}

func (e *Engine) ApplySpeedBonus(r model.QuestReward, startedAt, completedAt time.Time) model.QuestReward {
	return bonus(r, e.speedFactor(completedAt.Sub(startedAt)))
}

func (e *Engine) ApplyFirstCompletionBonus(r model.QuestReward, isFirst bool) model.QuestReward {
	if !isFirst {
		return r
	}

	return bonus(r, e.cfg.FirstCompletionMultiplier)
}

func (e *Engine) ApplyPerfectCompletionBonus(r model.QuestReward, isPerfect bool) model.QuestReward {
	if !isPerfect {
		return r
	}

	return bonus(r, e.cfg.PerfectCompletionMultiplier)
}

func (e *Engine) RoundMonetaryRewards(r model.QuestReward) model.QuestReward {
	return model.QuestReward{XP: r.XP, Commission: numberutil.RoundFloat(r.Commission, 2)}
}

func (e *Engine) ValidateRewards(r model.QuestReward) error {
	if r.XP < 0 {
		return errorx.New(errorx.InvalidReward, "XP must not be negative")
	}

	if r.Commission < 0 {
		return errorx.New(errorx.InvalidReward, "Commission must not be negative")
	}

	return nil
}

func (e *Engine) ValidateRewardLimits(r model.QuestReward) error {
	if r.XP > e.cfg.MaxXP {
		return errorx.New(errorx.RewardLimitExceeded,
			"XP %d exceeds the limit of %d", r.XP, e.cfg.MaxXP)
	}

	if r.Commission > e.cfg.MaxCommission {
		return errorx.New(errorx.RewardLimitExceeded,
			"Commission %.2f exceeds the limit of %.2f", r.Commission, e.cfg.MaxCommission)
	}

	return nil
}

// CalculateFinalReward runs the whole pipeline: difficulty, quest type,
// character class, streak, speed, first completion and perfect completion
// bonuses, then rounding and validation.
func (e *Engine) CalculateFinalReward(quest *entity.Quest, c Context) (model.QuestReward, Breakdown, error) {
	breakdown := Breakdown{
		Difficulty:        e.difficultyFactor(quest.Difficulty).InexactFloat64(),
		QuestType:         e.questTypeFactor(quest.QuestType).InexactFloat64(),
		ClassXP:           1,
		ClassCommission:   1,
		Streak:            e.streakFactor(c.StreakDays).InexactFloat64(),
		Speed:             e.speedFactor(c.CompletedAt.Sub(c.StartedAt)).InexactFloat64(),
		FirstCompletion:   1,
		PerfectCompletion: 1,
	}

	if m, ok := e.cfg.ClassMultipliers[c.CharacterClass]; ok {
		breakdown.ClassXP = m.XP.InexactFloat64()
		breakdown.ClassCommission = m.Commission.InexactFloat64()
	}

	if c.IsFirstCompletion {
		breakdown.FirstCompletion = e.cfg.FirstCompletionMultiplier.InexactFloat64()
	}

	if c.IsPerfect {
		breakdown.PerfectCompletion = e.cfg.PerfectCompletionMultiplier.InexactFloat64()
	}

	r := e.CalculateQuestRewards(quest)
	r = e.ApplyDifficultyMultiplier(r, quest.Difficulty)
	r = e.ApplyQuestTypeMultiplier(r, quest.QuestType)
	r = e.ApplyCharacterClassMultiplier(r, c.CharacterClass)
	r = e.ApplyStreakBonus(r, c.StreakDays)
	r = e.ApplySpeedBonus(r, c.StartedAt, c.CompletedAt)
	r = e.ApplyFirstCompletionBonus(r, c.IsFirstCompletion)
	r = e.ApplyPerfectCompletionBonus(r, c.IsPerfect)
	r = e.RoundMonetaryRewards(r)

	if err := e.ValidateRewards(r); err != nil {
		return model.QuestReward{}, breakdown, err
	}

	if err := e.ValidateRewardLimits(r); err != nil {
		return model.QuestReward{}, breakdown, err
	}

	return r, breakdown, nil
}

var notificationTitles = map[entity.NotificationType]string{
	entity.NotificationQuestReward: "Quest completed!",
	entity.NotificationAchievement: "Achievement unlocked!",
	entity.NotificationMilestone:   "Milestone reached!",
}

// GenerateRewardNotification formats the notification sent to a user who
// received r. The type defaults to quest_reward.
func (e *Engine) GenerateRewardNotification(
	userID, questID, questTitle string,
	r model.QuestReward,
	notificationType ...entity.NotificationType,
) model.Notification {
	t := entity.NotificationQuestReward
	if len(notificationType) > 0 && notificationType[0] != "" {
		t = notificationType[0]
	}

	title, ok := notificationTitles[t]
	if !ok {
		t = entity.NotificationQuestReward
		title = notificationTitles[t]
	}

	var message string
	switch t {
	case entity.NotificationMilestone:
		message = fmt.Sprintf("You passed a milestone with %d XP and $%.2f commission from %q.",
			r.XP, r.Commission, questTitle)
	case entity.NotificationAchievement:
		message = fmt.Sprintf("You unlocked %q and earned %d XP and $%.2f commission.",
			questTitle, r.XP, r.Commission)
	default:
		message = fmt.Sprintf("You completed %q and earned %d XP and $%.2f commission.",
			questTitle, r.XP, r.Commission)
	}

	return model.Notification{
		UserID:           userID,
		QuestID:          questID,
		Title:            title,
		Message:          message,
		NotificationType: enum.ToString(t),
		Data: map[string]any{
			"xp":          r.XP,
			"commission":  r.Commission,
			"quest_title": questTitle,
		},
	}
}

func (e *Engine) difficultyFactor(difficulty entity.Difficulty) decimal.Decimal {
	if m, ok := e.cfg.DifficultyMultipliers[difficulty]; ok {
		return m
	}

	return one
}

func (e *Engine) questTypeFactor(questType entity.QuestType) decimal.Decimal {
	if m, ok := e.cfg.QuestTypeMultipliers[questType]; ok {
		return m
	}

	return one
}

func (e *Engine) streakFactor(days int) decimal.Decimal {
	factor := one
	for _, tier := range e.cfg.StreakTiers {
		if days < tier.MinDays {
			break
		}

		factor = tier.Multiplier
	}

	return factor
}

func (e *Engine) speedFactor(elapsed time.Duration) decimal.Decimal {
	if elapsed < 0 {
		return one
	}

	for _, tier := range e.cfg.SpeedTiers {
		if elapsed < tier.Within {
			return tier.Multiplier
		}
	}

	return one
}

func multiply(r model.QuestReward, xp, commission decimal.Decimal) model.QuestReward {
	return model.QuestReward{
		XP:         numberutil.MulInt(r.XP, xp),
		Commission: numberutil.MulFloat(r.Commission, commission),
	}
}

func bonus(r model.QuestReward, factor decimal.Decimal) model.QuestReward {
	if r.XP <= 0 || factor.LessThanOrEqual(one) {
		return multiply(r, factor, factor)
	}

	return model.QuestReward{
		XP:         numberutil.MulIntUp(r.XP, factor),
		Commission: numberutil.MulFloat(r.Commission, factor),
	}
}
