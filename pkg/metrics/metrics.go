package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rankchoice"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	PollsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "polls_created_total", Help: "Number of polls persisted by create."},
	)
	PollUpdatesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "poll_updates_rejected_total", Help: "Poll creates/updates rejected before reaching the store, by reason."},
		[]string{"reason"},
	)
	VotersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "voters_created_total", Help: "Number of voters registered."},
	)
	SelectionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "selection_updates_rejected_total", Help: "Selection updates rejected because the ranks were not a permutation."},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "store_errors_total", Help: "Store failures by entity and operation."},
		[]string{"entity", "op"},
	)
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "poll_status_transitions_total", Help: "Poll lifecycle transitions applied by the scheduler, by target status."},
		[]string{"to"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(PollsCreated)
	reg.MustRegister(PollUpdatesRejected)
	reg.MustRegister(VotersCreated)
	reg.MustRegister(SelectionsRejected)
	reg.MustRegister(StoreErrors)
	reg.MustRegister(StatusTransitions)
}
