package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/web"
)

// Options 处理器运行参数
type Options struct {
	CookieName   string
	LoginURL     string
	MaxImageSize int64
}

// Handler 聚合页面和 API 处理函数
type Handler struct {
	postService    service.PostService
	commentService service.CommentService
	userService    service.UserService
	relService     service.RelationshipService
	tokens         *auth.TokenManager
	renderer       *web.Renderer
	opts           Options
}

func NewHandler(
	postService service.PostService,
	commentService service.CommentService,
	userService service.UserService,
	relService service.RelationshipService,
	tokens *auth.TokenManager,
	renderer *web.Renderer,
	opts Options,
) *Handler {
	return &Handler{
		postService:    postService,
		commentService: commentService,
		userService:    userService,
		relService:     relService,
		tokens:         tokens,
		renderer:       renderer,
		opts:           opts,
	}
}

// html 渲染页面并写出；当前用户和路径在这里统一填充
func (h *Handler) html(c *gin.Context, status int, page string, d *web.Data) {
	if d == nil {
		d = &web.Data{}
	}
	d.User = auth.Current(c)
	d.Path = c.Request.URL.Path

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, d); err != nil {
		logger.Error("render page failed", zap.String("page", page), zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) errorPage(c *gin.Context, status int, msg string) {
	h.html(c, status, web.PageError, &web.Data{Title: http.StatusText(status), Status: status, Message: msg})
	c.Abort()
}

func (h *Handler) notFound(c *gin.Context) {
	h.errorPage(c, http.StatusNotFound, "Страница не найдена.")
}

func (h *Handler) forbidden(c *gin.Context) {
	h.errorPage(c, http.StatusForbidden, "Редактировать запись может только её автор.")
}

// fail 把服务层错误映射为 HTTP 状态
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
	case errors.Is(err, service.ErrForbidden):
		h.forbidden(c)
	default:
		logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		_ = c.Error(err)
		h.errorPage(c, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
	}
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// postID 解析路径中的帖子 ID，非法时按 404 处理
func postID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func profileURL(username string) string { return "/profile/" + username + "/" }

func postURL(id uint) string { return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/" }

// NoRoute 未匹配路由返回 404 页面
func (h *Handler) NoRoute(c *gin.Context) {
	h.notFound(c)
}
