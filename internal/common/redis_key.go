package common

import "fmt"

func RedisKeyLeaderboardSnapshot(leaderboardID string) string {
	return fmt.Sprintf("leaderboard:%s:snapshot", leaderboardID)
}
