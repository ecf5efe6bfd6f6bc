package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	FeedRefreshes   prometheus.Counter
	FeedRefreshErrs prometheus.Counter
	SnapshotAge     prometheus.Gauge

	ScheduleRequests *prometheus.CounterVec // outcome label: ok|no_service|store_unavailable|error
	RequestDuration  prometheus.Histogram
	CandidateCount   prometheus.Histogram
	DegradedRecords  prometheus.Counter

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge

	PollInterval prometheus.Gauge // seconds
}

func NewCollector(pollInterval time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_feed_refreshes_total",
			Help: "Total successful realtime feed refreshes.",
		}),
		FeedRefreshErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_feed_refresh_errors_total",
			Help: "Total failed realtime feed refreshes.",
		}),
		SnapshotAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_snapshot_age_seconds",
			Help: "Age of the current realtime snapshot at last refresh.",
		}),
		ScheduleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedule_requests_total",
			Help: "Schedule requests by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "schedule_request_duration_seconds",
			Help:    "Duration of schedule request handling.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		CandidateCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "schedule_candidate_trips",
			Help:    "Candidate trips per schedule request.",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		}),
		DegradedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_degraded_records_total",
			Help: "Records returned with degraded enrichment.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_nats_published_total",
			Help: "Total NATS delay messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PollInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_feed_poll_interval_seconds",
			Help: "Realtime feed poll interval in seconds.",
		}),
	}

	reg.MustRegister(
		c.FeedRefreshes, c.FeedRefreshErrs, c.SnapshotAge,
		c.ScheduleRequests, c.RequestDuration, c.CandidateCount, c.DegradedRecords,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
		c.PollInterval,
	)

	c.PollInterval.Set(pollInterval.Seconds())
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}

// Publisher metrics hooks consumed by the NATS publisher.

func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}
