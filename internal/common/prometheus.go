package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	ChallengeCompletedTotal    = "challenges_completed_total"
	VoteCastTotal              = "votes_cast_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		ChallengeCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChallengeCompletedTotal,
			Help: "Count of all completed challenges",
		}, []string{"type"}),
		VoteCastTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: VoteCastTotal,
			Help: "Count of all submission votes",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
