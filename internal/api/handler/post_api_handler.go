package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/serializer"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// ListPosts 帖子列表
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=response.PageData{results=[]serializer.Post}}
// @Failure 500 {object} response.Response
// @Router /api/v1/posts/ [get]
func (h *Handler) ListPosts(c *gin.Context) {
	res, err := h.postService.List(c.Request.Context(), repository.PostFilter{}, c.Query("page"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	data := response.PageData{
		Count:    res.Page.Total,
		Page:     res.Page.Number,
		NumPages: res.Page.NumPages,
		Results:  serializer.NewPosts(res.Posts, h.postService.ImageURL),
	}
	if res.Page.HasNext() {
		n := res.Page.Next()
		data.Next = &n
	}
	if res.Page.HasPrevious() {
		p := res.Page.Previous()
		data.Previous = &p
	}
	response.Success(c, data)
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=serializer.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/ [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postID(c, "id")
	if !ok {
		response.NotFound(c, "post not found")
		return
	}
	p, err := h.postService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "post not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, serializer.NewPost(p, h.postService.ImageURL))
}
