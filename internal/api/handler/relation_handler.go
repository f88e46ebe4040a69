package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
	"github.com/d60-Lab/yatube/web"
)

// FollowIndex 当前用户关注的作者的帖子
func (h *Handler) FollowIndex(c *gin.Context) {
	p := auth.Current(c)
	res, err := h.postService.List(c.Request.Context(), repository.PostFilter{FollowerID: p.UserID}, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, web.PageFollow, &web.Data{
		Title:  "Посты подписок",
		Posts:  res.Posts,
		Page:   &res.Page,
		Follow: true,
	})
}

// ProfileFollow 关注作者。重复关注幂等，关注自己被忽略
func (h *Handler) ProfileFollow(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.userService.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	err = h.relService.Follow(ctx, auth.Current(c).UserID, author.ID)
	if err != nil && !errors.Is(err, service.ErrFollowSelf) {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(author.Username))
}

// ProfileUnfollow 取消关注，没有关注关系时什么也不做
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.userService.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.relService.Unfollow(ctx, auth.Current(c).UserID, author.ID); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(author.Username))
}

type userItem struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func userItems(users []*model.User) []userItem {
	res := make([]userItem, len(users))
	for i, u := range users {
		res[i] = userItem{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
	}
	return res
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/following/ [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	h.listRelations(c, h.relService.ListFollowing)
}

// ListFans 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username}/followers/ [get]
func (h *Handler) ListFans(c *gin.Context) {
	h.listRelations(c, h.relService.ListFans)
}

const maxPageSize = 100

type relationLister func(ctx context.Context, userID string, page, pageSize int) ([]*model.User, error)

func (h *Handler) listRelations(c *gin.Context, list relationLister) {
	u, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "user not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize > maxPageSize {
		response.BadRequest(c, "page_size must not exceed "+strconv.Itoa(maxPageSize))
		return
	}
	users, err := list(c.Request.Context(), u.ID, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": userItems(users)})
}
