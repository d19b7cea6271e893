package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	matches          prom.Counter
	cacheHits        prom.Counter
	cacheMisses      prom.Counter
	resolutions      *prom.CounterVec
	invalidations    prom.Counter
	annotateDuration prom.Histogram
	browseRequests   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.matches = prom.NewCounter(prom.CounterOpts{
			Namespace: "reportlink",
			Name:      "matches_total",
			Help:      "Candidate references recognized in scanned text",
		})
		pr.cacheHits = prom.NewCounter(prom.CounterOpts{
			Namespace: "reportlink",
			Name:      "cache_hits_total",
			Help:      "Classification cache hits",
		})
		pr.cacheMisses = prom.NewCounter(prom.CounterOpts{
			Namespace: "reportlink",
			Name:      "cache_misses_total",
			Help:      "Classification cache misses",
		})
		pr.resolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "reportlink",
			Name:      "resolutions_total",
			Help:      "Resolution results by outcome",
		}, []string{"outcome"})
		pr.invalidations = prom.NewCounter(prom.CounterOpts{
			Namespace: "reportlink",
			Name:      "cache_invalidations_total",
			Help:      "Cache invalidations triggered by file changes",
		})
		pr.annotateDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "reportlink",
			Name:      "annotate_duration_seconds",
			Help:      "Duration of annotate calls",
			Buckets:   prom.DefBuckets,
		})
		pr.browseRequests = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "reportlink",
			Name:      "browse_requests_total",
			Help:      "Browse requests by HTTP status",
		}, []string{"status"})
		reg.MustRegister(pr.matches, pr.cacheHits, pr.cacheMisses, pr.resolutions, pr.invalidations, pr.annotateDuration, pr.browseRequests)
	})
	return pr
}

func (p *PrometheusRecorder) IncMatches(n int) {
	if p == nil || p.matches == nil {
		return
	}
	p.matches.Add(float64(n))
}

func (p *PrometheusRecorder) IncCacheHit() {
	if p == nil || p.cacheHits == nil {
		return
	}
	p.cacheHits.Inc()
}

func (p *PrometheusRecorder) IncCacheMiss() {
	if p == nil || p.cacheMisses == nil {
		return
	}
	p.cacheMisses.Inc()
}

func (p *PrometheusRecorder) IncResolution(outcome OutcomeLabel) {
	if p == nil || p.resolutions == nil {
		return
	}
	p.resolutions.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncInvalidation() {
	if p == nil || p.invalidations == nil {
		return
	}
	p.invalidations.Inc()
}

func (p *PrometheusRecorder) ObserveAnnotateDuration(d time.Duration) {
	if p == nil || p.annotateDuration == nil {
		return
	}
	p.annotateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBrowseRequest(status int) {
	if p == nil || p.browseRequests == nil {
		return
	}
	p.browseRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}
