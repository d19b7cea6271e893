package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SafeOnAllMethods(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncMatches(3)
	r.IncCacheHit()
	r.IncCacheMiss()
	r.IncResolution(OutcomeLinkable)
	r.IncInvalidation()
	r.ObserveAnnotateDuration(time.Millisecond)
	r.ObserveBrowseRequest(200)
}

func TestPrometheusRecorder_RegistersAndCounts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IncMatches(2)
	r.IncCacheHit()
	r.IncCacheMiss()
	r.IncResolution(OutcomeNotLinkable)
	r.IncInvalidation()
	r.ObserveAnnotateDuration(5 * time.Millisecond)
	r.ObserveBrowseRequest(404)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["reportlink_matches_total"])
	require.True(t, names["reportlink_cache_hits_total"])
	require.True(t, names["reportlink_cache_misses_total"])
	require.True(t, names["reportlink_resolutions_total"])
	require.True(t, names["reportlink_cache_invalidations_total"])
	require.True(t, names["reportlink_annotate_duration_seconds"])
	require.True(t, names["reportlink_browse_requests_total"])
}

func TestPrometheusRecorder_NilReceiverSafe(t *testing.T) {
	var r *PrometheusRecorder
	r.IncMatches(1)
	r.IncCacheHit()
	r.IncCacheMiss()
	r.IncResolution(OutcomeURL)
	r.IncInvalidation()
	r.ObserveAnnotateDuration(time.Second)
	r.ObserveBrowseRequest(500)
}
