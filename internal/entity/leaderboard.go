package entity

import "github.com/questx-lab/questboard/pkg/enum"

type LeaderboardCategory string

var (
	CategoryOverall    = enum.New(LeaderboardCategory("overall"))
	CategoryReferrals  = enum.New(LeaderboardCategory("referrals"))
	CategoryCommission = enum.New(LeaderboardCategory("commission"))
	CategoryEngagement = enum.New(LeaderboardCategory("engagement"))
	CategoryQuests     = enum.New(LeaderboardCategory("quests"))
	CategoryRetention  = enum.New(LeaderboardCategory("retention"))
)

type LeaderboardTimeframe string

var (
	TimeframeDaily   = enum.New(LeaderboardTimeframe("daily"))
	TimeframeWeekly  = enum.New(LeaderboardTimeframe("weekly"))
	TimeframeMonthly = enum.New(LeaderboardTimeframe("monthly"))
	TimeframeAllTime = enum.New(LeaderboardTimeframe("all_time"))
)

type Leaderboard struct {
	Base
	OrganizationID string `gorm:"index"`
	Name           string
	Category       LeaderboardCategory
	Timeframe      LeaderboardTimeframe
	Weights        Map
	Filters        Map
	MaxEntries     int
	Enabled        bool
}

type RankingHistory struct {
	LeaderboardID string `gorm:"primaryKey"`
	UserID        string `gorm:"primaryKey"`
	Date          string `gorm:"primaryKey"`
	Rank          int
	Score         float64
	Metrics       Map
}
