package model

type RankingEntry struct {
	UserID         string         `json:"user_id"`
	Rank           int            `json:"rank"`
	Score          float64        `json:"score"`
	PreviousRank   *int           `json:"previous_rank,omitempty"`
	Change         string         `json:"change"`
	CharacterClass string         `json:"character_class"`
	Level          int            `json:"level"`
	Metrics        map[string]any `json:"metrics"`
}

type UserRanking struct {
	LeaderboardID     string  `json:"leaderboard_id"`
	LeaderboardName   string  `json:"leaderboard_name"`
	Rank              int     `json:"rank"`
	Score             float64 `json:"score"`
	Change            string  `json:"change"`
	TotalParticipants int     `json:"total_participants"`
	Percentile        float64 `json:"percentile"`
}

type ScoreDistribution struct {
	Low          int `json:"low"`
	BelowAverage int `json:"below_average"`
	AboveAverage int `json:"above_average"`
	High         int `json:"high"`
}

type LeaderboardStatistics struct {
	TotalParticipants int               `json:"total_participants"`
	AverageScore      float64           `json:"average_score"`
	MaxScore          float64           `json:"max_score"`
	ScoreDistribution ScoreDistribution `json:"score_distribution"`
	ClassDistribution map[string]int    `json:"class_distribution"`
}

type GetLeaderboardRequest struct {
	LeaderboardID string `json:"leaderboard_id" form:"leaderboard_id"`
}

type GetLeaderboardResponse struct {
	Entries []RankingEntry `json:"entries"`
}

type GetUserRankingsRequest struct {
	UserID          string   `json:"user_id" form:"user_id"`
	OrganizationIDs []string `json:"organization_ids" form:"organization_ids"`
}

type GetUserRankingsResponse struct {
	Rankings map[string]UserRanking `json:"rankings"`
}

type GetLeaderboardStatisticsRequest struct {
	LeaderboardID string `json:"leaderboard_id" form:"leaderboard_id"`
	Category      string `json:"category" form:"category"`
	Timeframe     string `json:"timeframe" form:"timeframe"`
}

type GetLeaderboardStatisticsResponse LeaderboardStatistics

type GetLeaderboardSnapshotRequest struct {
	LeaderboardID string `json:"leaderboard_id" form:"leaderboard_id"`
	Offset        int    `json:"offset" form:"offset"`
	Limit         int    `json:"limit" form:"limit"`
}

type GetLeaderboardSnapshotResponse struct {
	Entries []RankingEntry `json:"entries"`
	Total   int            `json:"total"`
}

type RefreshLeaderboardRequest struct {
	LeaderboardID string `json:"leaderboard_id"`
}

type RefreshLeaderboardResponse struct {
	Entries []RankingEntry `json:"entries"`
}
