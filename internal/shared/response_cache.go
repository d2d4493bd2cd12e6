package shared

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todoboard/pkg/tracing"
)

// ResponseCacheConfig configuration for response cache
type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// ResponseCache caches GET responses for a short TTL. Mutating handlers
// invalidate the affected paths so stale lists never outlive a write.
type ResponseCache struct {
	cache   *cache.Cache
	config  map[string]ResponseCacheConfig
	logger  *zap.Logger
	metrics *AppMetrics
}

// CachedResponse stored response entry
type CachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
	Timestamp  time.Time           `json:"timestamp"`
}

// NewResponseCache creates a new response cache instance
func NewResponseCache(logger *zap.Logger, metrics *AppMetrics, configs map[string]ResponseCacheConfig) *ResponseCache {
	c := cache.New(5*time.Minute, 10*time.Minute)

	if configs == nil {
		configs = map[string]ResponseCacheConfig{}
	}

	if _, ok := configs["default"]; !ok {
		configs["default"] = ResponseCacheConfig{
			TTL:     1 * time.Second,
			Enabled: false,
		}
	}

	return &ResponseCache{
		cache:   c,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

// CacheMiddleware serves cached GET responses and stores fresh ones
func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]
		if !exists {
			config = rc.config["default"]
		}

		if !config.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, path)

		if cachedResp, found := rc.cache.Get(cacheKey); found {
			cached := cachedResp.(CachedResponse)

			if time.Since(cached.Timestamp) < config.TTL {
				_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
					attribute.String("cache.age", time.Since(cached.Timestamp).String()),
				})
				defer span.End()

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				rc.logger.Debug("Cache hit",
					zap.String("path", path),
					zap.String("cache_key", cacheKey),
					zap.Duration("age", time.Since(cached.Timestamp)))

				for key, values := range cached.Headers {
					for _, value := range values {
						c.Header(key, value)
					}
				}

				c.Header("X-Cache", "HIT")
				c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.Timestamp).Seconds()))

				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}

			rc.cache.Delete(cacheKey)
		}

		_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.miss", []attribute.KeyValue{
			attribute.String("cache.key", cacheKey),
			attribute.String("cache.path", path),
		})
		span.End()

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			cachedResp := CachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}

			rc.cache.Set(cacheKey, cachedResp, config.TTL)

			c.Header("X-Cache", "MISS")
		}
	}
}

// generateCacheKey generates unique cache key
func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	keyParts = append(keyParts, fmt.Sprintf("ip_%s", GetClientIP(c)))

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

// InvalidatePath drops every cached entry for the given path
func (rc *ResponseCache) InvalidatePath(path string) {
	for key := range rc.cache.Items() {
		if strings.Contains(key, "cache:"+path+":") {
			rc.cache.Delete(key)
			rc.logger.Debug("Cache invalidated",
				zap.String("key", key),
				zap.String("path", path))
		}
	}
}

// InvalidateAllCache drops the entire cache
func (rc *ResponseCache) InvalidateAllCache() {
	rc.cache.Flush()
	rc.logger.Info("All cache invalidated")
}

// SetConfig allows configuring cache for specific endpoints
func (rc *ResponseCache) SetConfig(path string, config ResponseCacheConfig) {
	rc.config[path] = config
}

// GetStats returns cache statistics
func (rc *ResponseCache) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})

	stats["active_entries"] = rc.cache.ItemCount()
	stats["configs"] = len(rc.config)

	return stats
}

// responseWriter buffers the body so it can be cached after the handler runs
type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
