package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
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

	pr.IncPhaseTransition("focusing")
	pr.IncPhaseTransition("focusing")
	pr.IncSession("focus")
	pr.AddFocusTime(90 * time.Second)
	pr.IncMicroBreak()
	pr.IncFeedbackFailure("micro_break_start")
	pr.SetRemaining("long_break", 20*time.Minute)
	pr.SetStreak(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.transitions.WithLabelValues("focusing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.sessions.WithLabelValues("focus")))
	assert.Equal(t, 90.0, testutil.ToFloat64(pr.focusSeconds))
	assert.Equal(t, 1200.0, testutil.ToFloat64(pr.remaining.WithLabelValues("long_break")))
	assert.Equal(t, 3.0, testutil.ToFloat64(pr.streak))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestHTTPHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncMicroBreak()

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "focustimer_micro_breaks_total"))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncSession("focus")
		pr.SetStreak(1)
	})
}
