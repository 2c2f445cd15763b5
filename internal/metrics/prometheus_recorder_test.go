package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration(StageRender, 150*time.Millisecond)
	pr.ObserveRenderDuration(500 * time.Millisecond)
	pr.IncRenderOutcome(OutcomeSuccess)
	pr.IncRenderOutcome(OutcomeSuccess)
	pr.IncRenderOutcome(OutcomeInvalid)
	pr.SetLinkIssues(3)
	pr.SetPages(15)
	pr.IncValidationFailure()
	pr.IncFilesWritten(4)
	pr.IncFilesWritten(0)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.renderOutcome.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.renderOutcome.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.linkIssues), 0)
	assert.InDelta(t, 15, testutil.ToFloat64(pr.pages), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.validationFailures), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(pr.filesWritten), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncRenderOutcome(OutcomeFailed)
	pr.SetLinkIssues(1)
	pr.ObserveStageDuration(StageLoad, time.Second)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncRenderOutcome(OutcomeSuccess)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `docsite_renders_total{outcome="success"} 1`)
}
