package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	RewardDistributedTotal     = "reward_distributed_total"
	LeaderboardRefreshTotal    = "leaderboard_refresh_total"
	RateLimitedTotal           = "rate_limited_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		RewardDistributedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RewardDistributedTotal,
			Help: "Count of quest rewards distributed",
		}, []string{"quest_type"}),
		LeaderboardRefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LeaderboardRefreshTotal,
			Help: "Count of leaderboard refreshes",
		}, []string{"status"}),
		RateLimitedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RateLimitedTotal,
			Help: "Count of requests rejected by the rate limiter",
		}, []string{"path"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
