/*
Package monitoring provides kernel metrics collection.

# Overview

This package implements Prometheus-based metrics for the scheduler, the
watchdog, and memory reclamation, plus per-instance step statistics.

# Features

- App step counts and latency histograms
- Fault and app-switch counters
- Watchdog feed counter
- Free/allocated heap gauges refreshed at every reclamation
- StepStats: mean, standard deviation, p95, and max of recent step
  durations, computed with gonum and logged when an instance is torn down
- Gin middleware for the simulator debug server

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	metrics.RecordStep("launcher", 2*time.Millisecond)
	metrics.RecordSwitch("launch")

	stats := monitoring.NewStepStats(monitoring.DefaultStepWindow)
	stats.Observe(2 * time.Millisecond)
	summary := stats.Summary()

# Metrics Endpoint

The debug server exposes the registry at /metrics:

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
