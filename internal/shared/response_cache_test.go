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

func newCachedRouter(rc *ResponseCache, callCount *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(rc.CacheMiddleware())

	router.GET("/api/todos", func(c *gin.Context) {
		*callCount++
		c.JSON(200, gin.H{"count": *callCount})
	})

	router.POST("/api/todos", func(c *gin.Context) {
		rc.InvalidatePath("/api/todos")
		c.JSON(201, gin.H{"created": true})
	})

	return router
}

func cacheConfigs() map[string]ResponseCacheConfig {
	return map[string]ResponseCacheConfig{
		"/api/todos": {TTL: time.Minute, Enabled: true},
	}
}

func TestResponseCacheDefaultsDisabled(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()), nil)

	Expect(rc.config).To(HaveKey("default"))
	Expect(rc.config["default"].Enabled).To(BeFalse())
}

func TestResponseCacheMissThenHit(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()), cacheConfigs())

	callCount := 0
	router := newCachedRouter(rc, &callCount)

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/api/todos?userId=1", nil)
	router.ServeHTTP(first, req1)

	Expect(first.Code).To(Equal(200))
	Expect(callCount).To(Equal(1))

	second := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/api/todos?userId=1", nil)
	router.ServeHTTP(second, req2)

	Expect(second.Code).To(Equal(200))
	Expect(second.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(callCount).To(Equal(1))
	Expect(second.Body.String()).To(Equal(first.Body.String()))
}

func TestResponseCacheKeyIncludesQuery(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()), cacheConfigs())

	callCount := 0
	router := newCachedRouter(rc, &callCount)

	req1, _ := http.NewRequest("GET", "/api/todos?userId=1", nil)
	router.ServeHTTP(httptest.NewRecorder(), req1)

	req2, _ := http.NewRequest("GET", "/api/todos?userId=2", nil)
	router.ServeHTTP(httptest.NewRecorder(), req2)

	Expect(callCount).To(Equal(2))
}

func TestResponseCacheSkipsMutations(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()), cacheConfigs())

	callCount := 0
	router := newCachedRouter(rc, &callCount)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/todos", nil)
	router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(201))
	Expect(w.Header().Get("X-Cache")).To(BeEmpty())
}

func TestMutationInvalidatesCachedList(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()), cacheConfigs())

	callCount := 0
	router := newCachedRouter(rc, &callCount)

	req1, _ := http.NewRequest("GET", "/api/todos?userId=1", nil)
	router.ServeHTTP(httptest.NewRecorder(), req1)
	Expect(callCount).To(Equal(1))

	post, _ := http.NewRequest("POST", "/api/todos", nil)
	router.ServeHTTP(httptest.NewRecorder(), post)

	req2, _ := http.NewRequest("GET", "/api/todos?userId=1", nil)
	router.ServeHTTP(httptest.NewRecorder(), req2)

	Expect(callCount).To(Equal(2))
}

func TestInvalidateAllCache(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()), cacheConfigs())

	callCount := 0
	router := newCachedRouter(rc, &callCount)

	req, _ := http.NewRequest("GET", "/api/todos", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	Expect(rc.GetStats()["active_entries"]).To(Equal(1))

	rc.InvalidateAllCache()
	Expect(rc.GetStats()["active_entries"]).To(Equal(0))
}
