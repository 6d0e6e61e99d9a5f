package middleware

import (
	"bytes"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	ContentType string
	Body        []byte
}

// ResponseCache caches successful GET responses keyed by path and query.
type ResponseCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewResponseCache creates a cache whose entries live for ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &ResponseCache{store: gocache.New(ttl, 2*ttl), ttl: ttl}
}

// cacheKey is the path followed by the sorted query so purging by path
// prefix reaches every variant.
func cacheKey(c *gin.Context) string {
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteByte('?')
	for _, key := range keys {
		values := query[key]
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}
	return b.String()
}

// Cache serves GET requests from the cache and stores 200 responses.
func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		if raw, found := rc.store.Get(key); found {
			entry := raw.(cachedResponse)
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() == http.StatusOK {
			rc.store.Set(key, cachedResponse{
				ContentType: writer.Header().Get("Content-Type"),
				Body:        append([]byte(nil), writer.body.Bytes()...),
			}, gocache.DefaultExpiration)
		}
	}
}

// PurgeOnWrite drops every cached response under the request's user once a
// non-GET request under that user succeeds.
func (rc *ResponseCache) PurgeOnWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if userID := c.Param("user_id"); userID != "" {
			rc.PurgeCacheByPrefix("/v1/users/" + userID + "/")
		}
	}
}

// PurgeCacheByPrefix removes every entry whose path starts with prefix.
func (rc *ResponseCache) PurgeCacheByPrefix(prefix string) {
	for key := range rc.store.Items() {
		if strings.HasPrefix(key, prefix) {
			rc.store.Delete(key)
		}
	}
}

// PurgeCache removes every entry.
func (rc *ResponseCache) PurgeCache() {
	rc.store.Flush()
}

// ItemCount reports how many responses are cached.
func (rc *ResponseCache) ItemCount() int {
	return rc.store.ItemCount()
}

// responseWriter tees the body into a buffer.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
