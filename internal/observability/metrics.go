package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by route and status code.",
	}, []string{"route", "status"})
	usersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "store",
		Name:      "users_created_total",
		Help:      "Users created since process start.",
	})
	exercisesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "store",
		Name:      "exercises_created_total",
		Help:      "Exercises created since process start.",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, usersCreatedTotal, exercisesCreatedTotal)
}

// RecordRequest counts one handled HTTP request.
func RecordRequest(route, status string) {
	requestsTotal.WithLabelValues(route, status).Inc()
}

// RecordUserCreated counts one persisted user.
func RecordUserCreated() {
	usersCreatedTotal.Inc()
}

// RecordExerciseCreated counts one persisted exercise.
func RecordExerciseCreated() {
	exercisesCreatedTotal.Inc()
}
