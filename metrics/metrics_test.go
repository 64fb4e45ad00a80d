package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFunctionsRecord(t *testing.T) {
	before := testutil.ToFloat64(counter(t, "ok"))
	ObserveExtraction("ok")
	assert.InDelta(t, before+1, testutil.ToFloat64(counter(t, "ok")), 0.0001)

	ObserveField("title", true)
	ObserveFetch("page", 150*time.Millisecond)
	ObserveShortLink()
	ObserveHTTPRequest(http.MethodPost, "/ali/fetch", http.StatusOK, time.Second)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `aliadapter_extractions_total{outcome="ok"}`)
	assert.Contains(t, body, `aliadapter_fields_total{field="title",found="true"}`)
	assert.Contains(t, body, "aliadapter_fetch_duration_seconds_bucket")
	assert.Contains(t, body, "aliadapter_short_links_resolved_total")
	assert.Contains(t, body, `http_requests_total{code="200",method="POST",route="/ali/fetch"}`)
}

func counter(t *testing.T, outcome string) prometheus.Collector {
	t.Helper()
	Init()
	return extractionsTotal.WithLabelValues(outcome)
}
