package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/response"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/clock"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks    map[string]HealthCheck
	clock     clock.Clock
	log       *logger.Logger
	startTime time.Time
}

func NewHealthHandler(checks map[string]HealthCheck, clk clock.Clock, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		clock:     clk,
		log:       log,
		startTime: clk.Now(),
	}
}

type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

type HealthData struct {
	Status         string            `json:"status"`
	ServicesStatus map[string]string `json:"services_status"`
	Uptime         string            `json:"uptime"`
	Memory         MemoryMetrics     `json:"memory"`
	Goroutines     int               `json:"goroutines"`
}

func (h *HealthHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := "UP"
		services := map[string]string{"app": "UP"}
		for _, name := range names {
			if err := h.checks[name](ctx); err != nil {
				h.log.Warn("Health check failed", "service", name, "error", err)
				services[name] = "DOWN"
				status = "DEGRADED"
				continue
			}
			services[name] = "UP"
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		data := HealthData{
			Status:         status,
			ServicesStatus: services,
			Uptime:         h.clock.Since(h.startTime).String(),
			Memory: MemoryMetrics{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				NumGC:      mem.NumGC,
			},
			Goroutines: runtime.NumGoroutine(),
		}

		if status != "UP" {
			response.WriteJSON(w, http.StatusServiceUnavailable, data)
			return
		}
		response.WriteSuccess(w, data)
	}
}
