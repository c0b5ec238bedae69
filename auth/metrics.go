package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var loginResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "riderauth_login_results_total",
	Help: "Completed login attempts by outcome",
}, []string{"outcome"})

var staleResults = promauto.NewCounter(prometheus.CounterOpts{
	Name: "riderauth_login_stale_results_total",
	Help: "Login results dropped because their request code or attempt was no longer pending",
})
