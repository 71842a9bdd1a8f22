package api

import (
	"net/http"

	"go.uber.org/zap"
)

const (
	DefaultMaxConnections         = 128
	DefaultRateLimiterStorageSize = 64 * 1024 // 64 KB
)

type RunOptions struct {
	RateLimiterOpts      *RateLimiterOptions
	LogHttpRequests      bool
	CollectMetrics       bool
	UseRealIPMiddleware  bool
	EnableHeartbeatRoute bool
	RouteNotFoundHandler func(w http.ResponseWriter, r *http.Request)
	MaxConnections       int
}

type RateLimiterOptions struct {
	MemoryCacheSize      int
	MaxRequestsPerSecond int
	MaxBurst             int
}

func DefaultRunOptions() *RunOptions {
	return &RunOptions{
		RateLimiterOpts: &RateLimiterOptions{
			MemoryCacheSize:      DefaultRateLimiterStorageSize,
			MaxRequestsPerSecond: 1,
			MaxBurst:             1,
		},
		LogHttpRequests:      false,
		EnableHeartbeatRoute: true,
		UseRealIPMiddleware:  true,
		CollectMetrics:       true,
		RouteNotFoundHandler: func(w http.ResponseWriter, r *http.Request) {
			zap.S().Debugf("HostApi route not found: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		},
		MaxConnections: DefaultMaxConnections,
	}
}
