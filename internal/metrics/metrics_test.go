package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("tmdb", "test", "success"))

	ObserveUpstream("tmdb", "test", "success", time.Now().Add(-50*time.Millisecond))

	after := testutil.ToFloat64(UpstreamRequests.WithLabelValues("tmdb", "test", "success"))
	assert.Equal(t, before+1, after)
}

func TestCacheLookups_Labels(t *testing.T) {
	CacheLookups.WithLabelValues("years", "hit").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(CacheLookups.WithLabelValues("years", "hit")), 1.0)
}
