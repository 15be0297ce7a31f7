package entity

import "time"

// MemberPerformance is the denormalized per-organization view of a member. It
// is refreshed by the services that record member activity and only read
// here.
type MemberPerformance struct {
	UserID              string `gorm:"primaryKey"`
	OrganizationID      string `gorm:"primaryKey"`
	TotalReferrals      int64
	TotalCommission     float64
	ConversionRate      float64
	EngagementScore     float64
	QuestCompletionRate float64
	RetentionRate       float64
	CharacterClass      CharacterClass
	Level               int
	JoinedAt            time.Time
	LastActiveAt        time.Time
	UpdatedAt           time.Time
}
