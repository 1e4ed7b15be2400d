package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("psiklinik-api")
	b := NewCollector("psiklinik-api")

	a.SweepRuns.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.SweepRuns))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SweepRuns))
}

func TestObserveRecordsAndHandler(t *testing.T) {
	c := NewCollector("psiklinik-api")
	c.ObserveRecords(map[string]int{"products": 4, "patients": 2})

	assert.Equal(t, 4.0, testutil.ToFloat64(c.Records.WithLabelValues("products")))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `psiklinik_api_store_records{resource="patients"} 2`)
}
