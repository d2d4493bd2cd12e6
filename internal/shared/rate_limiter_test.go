package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

func TestNewRateLimiterCarriesEndpointConfigs(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()))

	Expect(rl.config).To(HaveKey("GET /api/todos"))
	Expect(rl.config).To(HaveKey("POST /api/todos"))
	Expect(rl.config).To(HaveKey("PUT /api/todos/:id"))
	Expect(rl.config).To(HaveKey("DELETE /api/todos/:id"))
	Expect(rl.config).To(HaveKey("POST /api/todos/:id/notes"))
	Expect(rl.config).To(HaveKey("default"))

	Expect(rl.config["GET /api/todos"].Requests).To(Equal(100))
	Expect(rl.config["POST /api/todos"].Requests).To(Equal(20))
}

func TestRateLimitMiddlewareSetsHeaders(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()))
	router := newLimitedRouter(rl)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(200))
	Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("60"))
	Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("59"))
	Expect(w.Header().Get("X-RateLimit-Reset")).ToNot(BeEmpty())
}

func TestRateLimitMiddlewareExceedLimit(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()))
	rl.SetConfig("GET /test", RateLimitEndpointConfig{
		Requests: 3,
		Window:   time.Minute,
		KeyFunc:  GetClientIP,
	})

	router := newLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusTooManyRequests))
	Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))
	Expect(w.Body.String()).To(ContainSubstring("Rate limit exceeded"))
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()))
	rl.SetConfig("GET /test", RateLimitEndpointConfig{
		Requests: 1,
		Window:   time.Minute,
		KeyFunc:  GetClientIP,
	})

	router := newLimitedRouter(rl)

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/test", nil)
	req1.Header.Set("X-Forwarded-For", "10.0.0.1")
	router.ServeHTTP(first, req1)
	Expect(first.Code).To(Equal(200))

	blocked := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/test", nil)
	req2.Header.Set("X-Forwarded-For", "10.0.0.1")
	router.ServeHTTP(blocked, req2)
	Expect(blocked.Code).To(Equal(http.StatusTooManyRequests))

	other := httptest.NewRecorder()
	req3, _ := http.NewRequest("GET", "/test", nil)
	req3.Header.Set("X-Forwarded-For", "10.0.0.2")
	router.ServeHTTP(other, req3)
	Expect(other.Code).To(Equal(200))
}

func TestRateLimitWindowResets(t *testing.T) {
	RegisterTestingT(t)

	rl := NewRateLimiter(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()))

	config := RateLimitEndpointConfig{
		Requests: 1,
		Window:   10 * time.Millisecond,
		KeyFunc:  GetClientIP,
	}

	allowed, _, _ := rl.checkRateLimit("rate_limit:test:ip", config)
	Expect(allowed).To(BeTrue())

	allowed, _, _ = rl.checkRateLimit("rate_limit:test:ip", config)
	Expect(allowed).To(BeFalse())

	time.Sleep(15 * time.Millisecond)

	allowed, _, _ = rl.checkRateLimit("rate_limit:test:ip", config)
	Expect(allowed).To(BeTrue())
}
