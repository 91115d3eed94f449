// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes the sync engine and the HTTP API as Prometheus
// metrics.
//
// [Collector] consumes the engine's event bus and keeps per-status gauges of
// the registered states. [HTTPMetrics] records request counts and latencies
// of the sync server.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/MKhiriev/go-state-sync/internal/eventbus"
	"github.com/MKhiriev/go-state-sync/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric of this module.
const Namespace = "state_sync"

var allStatuses = []models.SyncStatus{
	models.NeverSynced,
	models.LocalPending,
	models.RemotePending,
	models.Conflict,
	models.Syncing,
	models.SyncFailed,
	models.Synced,
}

// Collector turns sync events into metrics.
type Collector struct {
	events   *prometheus.CounterVec
	dropped  prometheus.Counter
	states   *prometheus.GaugeVec
	lastSync prometheus.Gauge
}

// NewCollector creates the engine metrics and registers them with registerer.
func NewCollector(namespace string, registerer prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Number of sync events by kind",
		}, []string{"kind"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Number of sync events lost because the collector lagged behind",
		}),
		states: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "states",
			Help:      "Number of registered states by sync status",
		}, []string{"status"}),
		lastSync: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_completed_sync_timestamp_seconds",
			Help:      "Unix time of the last completed sync",
		}),
	}

	err := errors.Join(
		registerer.Register(c.events),
		registerer.Register(c.dropped),
		registerer.Register(c.states),
		registerer.Register(c.lastSync),
	)
	return c, err
}

// Observe accounts a single event.
func (c *Collector) Observe(ev models.SyncEvent) {
	c.events.WithLabelValues(ev.Kind.String()).Inc()
	if ev.Kind == models.EventCompleted {
		c.lastSync.Set(float64(ev.At.Unix()))
	}
}

// SetStates replaces the per-status gauges with the counts of snapshot.
// Statuses without states are reported as zero.
func (c *Collector) SetStates(snapshot map[models.StateID]models.SyncMetadata) {
	counts := make(map[models.SyncStatus]int, len(allStatuses))
	for _, m := range snapshot {
		counts[m.Status]++
	}
	for _, status := range allStatuses {
		c.states.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

// Run consumes sub until ctx is done or the bus is closed. After every
// event the state gauges are refreshed from snapshot, when given.
func (c *Collector) Run(ctx context.Context, sub *eventbus.Subscription, snapshot func(context.Context) map[models.StateID]models.SyncMetadata) error {
	defer sub.Close()

	var dropped uint64
	if snapshot != nil {
		c.SetStates(snapshot(ctx))
	}

	for {
		ev, err := sub.Recv(ctx)
		if err != nil {
			if errors.Is(err, eventbus.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if d := sub.Dropped(); d > dropped {
			c.dropped.Add(float64(d - dropped))
			dropped = d
		}

		c.Observe(ev)
		if snapshot != nil {
			c.SetStates(snapshot(ctx))
		}
	}
}

// HTTPMetrics records the requests served by the sync server.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics creates the request metrics and registers them with
// registerer.
func NewHTTPMetrics(namespace string, registerer prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	err := errors.Join(
		registerer.Register(m.requests),
		registerer.Register(m.duration),
	)
	return m, err
}

// Observe records one request. route should be the route pattern, not the
// raw path, to keep the label cardinality bounded.
func (m *HTTPMetrics) Observe(method, route string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}
