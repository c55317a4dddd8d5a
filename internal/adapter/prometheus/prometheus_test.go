package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPICall(t *testing.T) {
	a := NewPrometheusAdapter()
	a.RecordAPICall("GET", "/vehiculo", 200, time.Now())
	a.RecordAPICall("GET", "/vehiculo", 200, time.Now())
	a.RecordAPICall("DELETE", "/vehiculo/:id", 401, time.Now())

	if got := testutil.ToFloat64(a.apiRequests.WithLabelValues("GET", "/vehiculo", "200")); got != 2 {
		t.Fatalf("expected 2 GET /vehiculo calls, got %v", got)
	}
	if got := testutil.ToFloat64(a.apiRequests.WithLabelValues("DELETE", "/vehiculo/:id", "401")); got != 1 {
		t.Fatalf("expected 1 DELETE call, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := NewPrometheusAdapter()

	r := gin.New()
	r.Use(a.Middleware())
	r.GET("/vehiculos/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(a.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/vehiculos/3", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `fleet_console_http_requests_total{method="GET",route="/vehiculos/:id",status="200"} 1`) {
		t.Fatalf("route counter missing from metrics output")
	}
}
