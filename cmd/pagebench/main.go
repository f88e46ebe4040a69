// pagebench 对比首页在有无页面缓存时的渲染延迟。
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/app"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagecache"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	flags := pflag.NewFlagSet("pagebench", pflag.ExitOnError)
	dsn := flags.String("dsn", "file:pagebench?mode=memory&cache=shared&_foreign_keys=1", "sqlite DSN")
	redisAddr := flags.String("redis", "", "Redis 地址，为空时使用进程内缓存")
	posts := flags.Int("posts", 5000, "帖子数量")
	requests := flags.Int("requests", 2000, "请求次数")
	pages := flags.Int("pages", 20, "随机访问的页数范围")
	_ = flags.Parse(os.Args[1:])

	gin.SetMode(gin.ReleaseMode)
	ctx := context.Background()

	cfg := must(config.Load())
	cfg.Server.Mode = gin.ReleaseMode
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = *dsn
	cfg.Database.LogLevel = "silent"
	cfg.Storage.Driver = "local"
	cfg.Storage.LocalDir = os.TempDir()

	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	mustDo(repository.Migrate(db))
	seed(db, *posts)

	var store pagecache.Store = pagecache.NewMemoryStore()
	if *redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer client.Close()
		mustDo(client.Ping(ctx).Err())
		store = pagecache.NewRedisStore(client, "pagebench:"+uuid.NewString()[:8]+":")
	}

	targets := makeTargets(*requests, *pages)

	noCache := must(app.New(ctx, cfg, db, nil))
	cached := must(app.New(ctx, cfg, db, store))
	mustDo(cached.PageCache.Clear(ctx))

	fmt.Printf("Index latency (%d requests over %d pages, %d posts)\n", len(targets), *pages, *posts)
	report("No cache", run(noCache.Router, targets))
	report("Page cache (cold)", run(cached.Router, targets))
	report("Page cache (warm)", run(cached.Router, targets))
}

func seed(db *gorm.DB, n int) {
	var existing int64
	mustDo(db.Model(&model.Post{}).Count(&existing).Error)
	if existing >= int64(n) {
		return
	}
	author := model.User{ID: uuid.NewString(), Username: "bench_" + uuid.NewString()[:8], Password: "x"}
	mustDo(db.Create(&author).Error)

	now := time.Now().UTC()
	rows := make([]model.Post, 0, n)
	for i := int(existing); i < n; i++ {
		rows = append(rows, model.Post{
			Text:     fmt.Sprintf("Запись %d для замера.", i),
			PubDate:  now.Add(-time.Duration(i) * time.Second),
			AuthorID: author.ID,
		})
	}
	mustDo(db.Omit("Author", "Group").CreateInBatches(&rows, 1000).Error)
}

func makeTargets(n, pages int) []string {
	if pages < 1 {
		pages = 1
	}
	rnd := rand.New(rand.NewSource(42))
	out := make([]string, n)
	for i := range out {
		page := 1
		if rnd.Float64() > 0.7 {
			page = 2 + rnd.Intn(pages)
		}
		out[i] = fmt.Sprintf("/?page=%d", page)
	}
	return out
}

func run(h http.Handler, targets []string) []time.Duration {
	out := make([]time.Duration, 0, len(targets))
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		start := time.Now()
		h.ServeHTTP(w, req)
		out = append(out, time.Since(start))
		if w.Code != http.StatusOK {
			panic(fmt.Sprintf("GET %s: status %d", target, w.Code))
		}
	}
	return out
}

func report(name string, ds []time.Duration) {
	fmt.Printf("%-18s avg=%v p95=%v p99=%v\n", name, avg(ds), pct(ds, 0.95), pct(ds, 0.99))
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
