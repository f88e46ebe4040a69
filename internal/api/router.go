package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/yatube/docs"
	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/pagecache"
)

// Deps 路由依赖
type Deps struct {
	Config    *config.Config
	Handler   *handler.Handler
	Tokens    *auth.TokenManager
	PageCache *pagecache.Cache
	// MediaDir 非空时以 Config.Storage.LocalURL 提供本地图片
	MediaDir string
}

// SetupRouter 注册中间件和全部路由
func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	h := d.Handler

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(auth.Middleware(d.Tokens, cfg.Auth.CookieName))
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))

	if d.PageCache != nil {
		r.GET("/", d.PageCache.Middleware(), h.Index)
	} else {
		r.GET("/", h.Index)
	}
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:post_id/", h.PostDetail)
	r.GET("/about/author/", h.AboutAuthor)
	r.GET("/about/tech/", h.AboutTech)

	account := r.Group("/auth")
	{
		account.GET("/login/", h.Login)
		account.POST("/login/", h.Login)
		account.GET("/signup/", h.Signup)
		account.POST("/signup/", h.Signup)
		account.GET("/logout/", h.Logout)
	}

	protected := r.Group("/", auth.Required(cfg.Auth.LoginURL))
	{
		protected.GET("/create/", h.PostCreate)
		protected.POST("/create/", h.PostCreate)
		protected.GET("/posts/:post_id/edit/", h.PostEdit)
		protected.POST("/posts/:post_id/edit/", h.PostEdit)
		protected.POST("/posts/:post_id/comment/", h.AddComment)
		protected.GET("/follow/", h.FollowIndex)
		protected.GET("/profile/:username/follow/", h.ProfileFollow)
		protected.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/posts/", h.ListPosts)
		v1.GET("/posts/:id/", h.GetPost)
		v1.GET("/users/:username/following/", h.ListFollowing)
		v1.GET("/users/:username/followers/", h.ListFans)
	}

	if d.MediaDir != "" {
		media := r.Group(cfg.Storage.LocalURL, func(c *gin.Context) {
			c.Header("X-Content-Type-Options", "nosniff")
		})
		media.Static("/", d.MediaDir)
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.NoRoute(h.NoRoute)
	return r
}
