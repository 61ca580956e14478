package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry          *prometheus.Registry
	GamesRecorded     *prometheus.CounterVec
	PlayersRegistered prometheus.Counter
	RejectedInputs    *prometheus.CounterVec
	LeaderboardCache  *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		GamesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whowon",
			Name:      "games_recorded_total",
			Help:      "Games stored, by outcome from player one's side.",
		}, []string{"outcome"}),
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "whowon",
			Name:      "players_registered_total",
			Help:      "Players created.",
		}),
		RejectedInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whowon",
			Name:      "rejected_inputs_total",
			Help:      "Submissions rejected by validation, by error kind.",
		}, []string{"kind"}),
		LeaderboardCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whowon",
			Name:      "leaderboard_cache_total",
			Help:      "Leaderboard cache lookups, by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whowon",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "whowon",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GamesRecorded,
		m.PlayersRegistered,
		m.RejectedInputs,
		m.LeaderboardCache,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}
