// go-qrcode
// Copyright 2014 Tom Harwood

package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qrstyle",
		Subsystem: "generator",
		Name:      "generations_total",
		Help:      "Total number of generations, per result (ok, invalid, too_long, cancelled)",
	}, []string{"result"})
	metricGenerationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "qrstyle",
		Subsystem: "generator",
		Name:      "generation_seconds",
		Help:      "Time spent encoding, resolving and rendering one symbol",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	})
	metricSymbolVersion = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "qrstyle",
		Subsystem: "generator",
		Name:      "symbol_version",
		Help:      "Version of the generated symbols",
		Buckets:   prometheus.LinearBuckets(1, 3, 14),
	})
	metricWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qrstyle",
		Subsystem: "generator",
		Name:      "render_warnings_total",
		Help:      "Total number of non-fatal render warnings",
	})
	metricSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qrstyle",
		Subsystem: "session",
		Name:      "superseded_total",
		Help:      "Total number of session renders discarded because newer settings arrived",
	})
	metricArtifacts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qrstyle",
		Subsystem: "generator",
		Name:      "artifacts_total",
		Help:      "Total number of results handed to a consumer",
	})
)
