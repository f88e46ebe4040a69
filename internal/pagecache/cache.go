// Package pagecache 对整页渲染结果做定时缓存。
//
// 缓存窗口内读到的页面可能是旧的；帖子创建或编辑后由服务层调用 Clear
// 主动失效。绕过服务层直接写库的改动只会在窗口过期后可见。
package pagecache

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/pkg/logger"
)

// VaryFunc 返回参与缓存 key 计算的请求属性（如当前登录用户）
type VaryFunc func(c *gin.Context) string

// Cache 页面缓存
type Cache struct {
	store Store
	ttl   time.Duration
	vary  VaryFunc
	// gen 参与 key 计算，Clear 时递增；Clear 之前开始渲染的页面写入旧代，不会再被读到
	gen atomic.Uint64
}

func New(store Store, ttl time.Duration, vary VaryFunc) *Cache {
	if vary == nil {
		vary = func(*gin.Context) string { return "" }
	}
	return &Cache{store: store, ttl: ttl, vary: vary}
}

// Key 由 method、完整 URI 和 vary 值计算
func Key(method, uri, vary string) string {
	h := xxhash.New()
	_, _ = h.WriteString(method)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(uri)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(vary)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Clear 使所有缓存页面失效
func (pc *Cache) Clear(ctx context.Context) error {
	pc.gen.Add(1)
	return pc.store.Clear(ctx)
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware 缓存 GET 请求的 200 响应
func (pc *Cache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := Key(c.Request.Method, c.Request.URL.RequestURI(), pc.vary(c)) + "." + strconv.FormatUint(pc.gen.Load(), 36)

		e, ok, err := pc.store.Get(ctx, key)
		if err != nil {
			logger.Warn("page cache get failed", zap.Error(err))
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(e.Status, e.ContentType, e.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		c.Writer = w.ResponseWriter

		if w.Status() != http.StatusOK || c.IsAborted() {
			return
		}
		entry := &Entry{Status: w.Status(), ContentType: w.Header().Get("Content-Type"), Body: w.buf.Bytes()}
		if err := pc.store.Set(ctx, key, entry, pc.ttl); err != nil {
			logger.Warn("page cache set failed", zap.Error(err))
		}
	}
}
