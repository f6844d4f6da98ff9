package metrics

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/api/inquiries", endpointLabel("/api/inquiries"))
	assert.Equal(t, "/", endpointLabel("/"))
	assert.Equal(t, "static", endpointLabel("/assets/index-3f2a.js"))
	assert.Equal(t, "static", endpointLabel("/services/web-design"))
}

func TestPrometheusMiddleware_CountsByEndpoint(t *testing.T) {
	handler := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"x"}`))
	}))

	counter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/inquiries", "201")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestPrometheusMiddleware_SkipsScrapeEndpoint(t *testing.T) {
	called := false
	handler := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "static", "200")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, Path, nil))

	assert.True(t, called)
	assert.Equal(t, before, testutil.ToFloat64(counter))
}

func TestBusinessCounters(t *testing.T) {
	before := testutil.ToFloat64(inquirySubmissionsTotal)
	RecordInquirySubmission()
	assert.Equal(t, before+1, testutil.ToFloat64(inquirySubmissionsTotal))

	before = testutil.ToFloat64(inquiryValidationFailuresTotal)
	RecordInquiryValidationFailure()
	assert.Equal(t, before+1, testutil.ToFloat64(inquiryValidationFailuresTotal))
}

func TestRecordDBQuery(t *testing.T) {
	failures := dbQueriesTotal.WithLabelValues("create_inquiry", "error")
	before := testutil.ToFloat64(failures)

	RecordDBQuery("create_inquiry", 3*time.Millisecond, errors.New("connection refused"))
	assert.Equal(t, before+1, testutil.ToFloat64(failures))

	RecordDBStats(sql.DBStats{InUse: 3, Idle: 2})
	assert.Equal(t, 3.0, testutil.ToFloat64(dbConnectionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(dbConnectionsIdle))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	RecordInquirySubmission()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Path, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inquiry_submissions_total")
}
