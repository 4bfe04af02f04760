package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skiroute_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "code"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skiroute_cache_lookups_total",
		Help: "Digest lookups before solving, by result",
	}, []string{"result"}) // "hit", "miss" or "error"
)
