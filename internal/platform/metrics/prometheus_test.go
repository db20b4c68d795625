package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAPIRequest(t *testing.T) {
	m := NewMetricsManager("lostpets")

	m.ObserveAPIRequest("pets.list", 200, 30*time.Millisecond)
	m.ObserveAPIRequest("pets.list", 200, 10*time.Millisecond)
	m.ObserveAPIRequest("pets.list", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("pets.list", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("pets.list", "0")))
}

func TestHandlerExposesNotifications(t *testing.T) {
	m := NewMetricsManager("lostpets")
	m.IncNotification("danger")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lostpets_notifications_total{kind="danger"} 1`)
}
