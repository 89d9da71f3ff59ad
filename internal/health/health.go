// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package health computes liveness/readiness/system-metrics snapshots for
// the health endpoints. Three depths are provided: a basic check that never
// probes anything, a detailed check with a host system snapshot, and a
// comprehensive check that runs caller-supplied dependency probes
// concurrently and derives the overall status from their outcomes.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
)

// memoryDegradedThreshold is the host memory usage percentage above which
// the detailed check reports "degraded".
const memoryDegradedThreshold = 90.0

// Probe is an asynchronous boolean dependency check. Returning false or a
// non-nil error marks the dependency as down; panics are caught and count
// as down as well.
type Probe func(ctx context.Context) (bool, error)

// Checker is the health check aggregator. It is safe for concurrent use;
// all fields are read-only after construction.
type Checker struct {
	cfg       *config.StructuredConfig
	logger    *logger.Logger
	startedAt time.Time
}

// NewChecker constructs a health [Checker]. Process uptime is measured from
// the moment of construction.
func NewChecker(cfg *config.StructuredConfig, log *logger.Logger) *Checker {
	return &Checker{
		cfg:       cfg,
		logger:    log,
		startedAt: time.Now(),
	}
}

// Basic performs the lightweight health check: no dependency probing, no
// system counters. Always fast and side-effect-free.
func (c *Checker) Basic() models.HealthCheckResponse {
	return models.HealthCheckResponse{
		Status:      models.StatusHealthy,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      c.uptime(),
		Version:     c.cfg.App.Version,
		Environment: c.cfg.App.Env,
	}
}

// Detailed performs the basic check plus a host system snapshot when
// metrics are enabled. High memory usage (>90%) degrades the status; any
// failure while gathering metrics is caught and reported as "unhealthy"
// rather than propagated.
func (c *Checker) Detailed(ctx context.Context) models.HealthCheckResponse {
	resp := c.Basic()

	if !c.cfg.Health.MetricsEnabled {
		return resp
	}

	system, err := c.collectSystemMetrics(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("error performing detailed health check")
		resp.Status = models.StatusUnhealthy
		return resp
	}

	if system.Memory.Percentage > memoryDegradedThreshold {
		c.logger.Warn().
			Float64("memory_percentage", system.Memory.Percentage).
			Msg("high memory usage detected")
		resp.Status = models.StatusDegraded
	}

	resp.System = system
	return resp
}

// Comprehensive runs every supplied dependency probe concurrently, records
// one [models.ServiceHealth] per dependency, and derives the overall status:
// any down dependency makes the snapshot unhealthy, otherwise any degraded
// one makes it degraded.
func (c *Checker) Comprehensive(ctx context.Context, probes map[string]Probe) models.HealthCheckResponse {
	resp := c.Detailed(ctx)

	if len(probes) == 0 {
		return resp
	}

	var mu sync.Mutex
	services := make(map[string]models.ServiceHealth, len(probes))

	g, gctx := errgroup.WithContext(ctx)
	for name, probe := range probes {
		name, probe := name, probe
		g.Go(func() error {
			result := c.checkService(gctx, name, probe)

			mu.Lock()
			services[name] = result
			mu.Unlock()
			return nil
		})
	}
	// probes never return errors through the group; failures are recorded
	// per service instead
	_ = g.Wait()

	resp.Services = services
	if overall := deriveOverallStatus(services); overall != models.StatusHealthy {
		resp.Status = overall
	}

	return resp
}

// checkService runs one probe, timing it and converting errors and panics
// into a "down" record.
func (c *Checker) checkService(ctx context.Context, name string, probe Probe) (result models.ServiceHealth) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error().Any("panic", rec).Str("service", name).Msg("health probe panicked")
			result = models.ServiceHealth{
				Status:       models.ServiceDown,
				Message:      "Service check failed: probe panicked",
				ResponseTime: time.Since(start).Milliseconds(),
				LastChecked:  time.Now().UTC().Format(time.RFC3339),
			}
		}
	}()

	up, err := probe(ctx)
	result = models.ServiceHealth{
		ResponseTime: time.Since(start).Milliseconds(),
		LastChecked:  time.Now().UTC().Format(time.RFC3339),
	}

	switch {
	case err != nil:
		c.logger.Error().Err(err).Str("service", name).Msg("health check failed")
		result.Status = models.ServiceDown
		result.Message = "Service check failed: " + err.Error()
	case !up:
		result.Status = models.ServiceDown
		result.Message = "Service is down"
	default:
		result.Status = models.ServiceUp
		result.Message = "Service is operational"
	}

	return result
}

// deriveOverallStatus folds per-dependency statuses into the overall one:
// any down dependency wins over degraded, which wins over healthy.
func deriveOverallStatus(services map[string]models.ServiceHealth) string {
	if len(services) == 0 {
		return models.StatusHealthy
	}

	overall := models.StatusHealthy
	for _, svc := range services {
		switch svc.Status {
		case models.ServiceDown:
			return models.StatusUnhealthy
		case models.ServiceDegraded:
			overall = models.StatusDegraded
		}
	}

	return overall
}

// uptime returns whole seconds since the checker was constructed.
func (c *Checker) uptime() int64 {
	return int64(time.Since(c.startedAt).Seconds())
}
