package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterBurst(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d rejected within burst", i)
		}
	}
	if rl.Allow("a") {
		t.Error("fourth request allowed past burst")
	}
	if !rl.Allow("b") {
		t.Error("other client shares the bucket")
	}

	now = now.Add(time.Second)
	if !rl.Allow("a") {
		t.Error("token not refilled after one second")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(5 * time.Minute)
	rl.Allow("new")

	if n := rl.Cleanup(3 * time.Minute); n != 1 {
		t.Errorf("Cleanup() = %d, want 1", n)
	}
	if _, ok := rl.visitors["new"]; !ok {
		t.Error("active client removed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	rl := NewRateLimiter(0.001, 1)
	r.POST("/x", RateLimit(rl, func(c *gin.Context) string { return "k" }), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		codes[i] = w.Code
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/templates/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/templates/drake", nil))
	m.ObserveExport("ok")
	m.ObserveGeneration("error")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	for _, want := range []string{
		`http_requests_total{method="GET",path="/api/templates/:id",status="200"} 1`,
		`meme_exports_total{outcome="ok"} 1`,
		`caption_generations_total{outcome="error"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestBasicAuth(t *testing.T) {
	r := gin.New()
	r.GET("/open", BasicAuth("", ""), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/closed", BasicAuth("admin", "secret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK {
		t.Errorf("open route = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/closed", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("closed route without creds = %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.SetBasicAuth("admin", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("closed route with creds = %d", w.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, logging.ParseLevel("debug"))

	r := gin.New()
	r.Use(RequestLogger(l))
	r.GET("/boom", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("request id header = %q", w.Header().Get(RequestIDHeader))
	}
	out := buf.String()
	if strings.Count(out, "request_id=abc-123") != 2 {
		t.Errorf("request id not carried into handler logs:\n%s", out)
	}
	if !strings.Contains(out, "status=418") {
		t.Errorf("status missing from log:\n%s", out)
	}
}
