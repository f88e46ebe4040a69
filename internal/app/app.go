// Package app 组装仓储、服务、模板和路由。
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/pagecache"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/web"
)

// App 一个完整装配好的站点
type App struct {
	Router    *gin.Engine
	PageCache *pagecache.Cache
	Images    storage.ImageStore
	Tokens    *auth.TokenManager
}

// New 按配置装配。store 为 nil 时不启用首页缓存
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, store pagecache.Store) (*App, error) {
	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	var pc *pagecache.Cache
	var invalidator service.Invalidator
	if store != nil {
		pc = pagecache.New(store, cfg.Cache.IndexTTL, auth.Username)
		invalidator = pc
	}

	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)
	postService := service.NewPostService(posts, repository.NewGroupRepository(db), images, invalidator)
	comments := repository.NewCommentRepository(db)
	commentService := service.NewCommentService(posts, comments)
	userService := service.NewUserService(repository.NewUserRepository(db), posts, follows, comments)
	relService := service.NewRelationshipService(follows)

	renderer, err := web.NewRenderer(images.URL)
	if err != nil {
		return nil, err
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	h := handler.NewHandler(postService, commentService, userService, relService, tokens, renderer, handler.Options{
		CookieName:   cfg.Auth.CookieName,
		LoginURL:     cfg.Auth.LoginURL,
		MaxImageSize: cfg.Storage.MaxUpload,
	})

	deps := api.Deps{Config: cfg, Handler: h, Tokens: tokens, PageCache: pc}
	if local, ok := images.(*storage.LocalStore); ok {
		deps.MediaDir = local.Dir()
	}
	return &App{
		Router:    api.SetupRouter(deps),
		PageCache: pc,
		Images:    images,
		Tokens:    tokens,
	}, nil
}
