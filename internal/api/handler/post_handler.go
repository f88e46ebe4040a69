package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/web"
)

// Index 首页：全部帖子，按发布时间倒序分页
func (h *Handler) Index(c *gin.Context) {
	res, err := h.postService.List(c.Request.Context(), repository.PostFilter{}, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, web.PageIndex, &web.Data{
		Title: "Последние обновления на сайте",
		Posts: res.Posts,
		Page:  &res.Page,
		Index: true,
	})
}

// GroupPosts 社区帖子列表
func (h *Handler) GroupPosts(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := h.postService.GroupBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.postService.List(ctx, repository.PostFilter{GroupID: group.ID}, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, web.PageGroupList, &web.Data{
		Title: "Записи сообщества " + group.Title + ".",
		Group: group,
		Posts: res.Posts,
		Page:  &res.Page,
	})
}

// Profile 作者主页：作者帖子、统计以及当前用户是否已关注
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	author, err := h.userService.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.postService.List(ctx, repository.PostFilter{AuthorID: author.ID}, c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	stats, err := h.userService.Stats(ctx, author.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	var viewerID string
	if p := auth.Current(c); p != nil {
		viewerID = p.UserID
	}
	following, err := h.relService.IsFollowing(ctx, viewerID, author.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, web.PageProfile, &web.Data{
		Title:          "Профайл пользователя",
		Author:         author,
		Posts:          res.Posts,
		Page:           &res.Page,
		Following:      following,
		PostsCount:     stats.Posts,
		FollowersCount: stats.Followers,
		FollowingCount: stats.Following,
		CommentsCount:  stats.Comments,
	})
}

// PostDetail 帖子详情和评论
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := postID(c, "post_id")
	if !ok {
		h.notFound(c)
		return
	}
	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.renderDetail(c, post, nil, nil)
}

func (h *Handler) renderDetail(c *gin.Context, post *model.Post, values map[string]string, ve *form.ValidationError) {
	comments, err := h.commentService.List(c.Request.Context(), post.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, web.PagePostDetail, &web.Data{
		Title:    "Пост " + post.Excerpt(),
		Post:     post,
		Comments: comments,
		Form:     values,
		Errors:   ve,
	})
}

// PostCreate GET 显示空表单；POST 校验通过后以当前用户为作者保存并跳转到其主页
func (h *Handler) PostCreate(c *gin.Context) {
	ctx := c.Request.Context()
	groups, err := h.postService.Groups(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	d := &web.Data{Title: "Новая запись", Groups: groups}
	if c.Request.Method != http.MethodPost {
		h.html(c, http.StatusOK, web.PageCreatePost, d)
		return
	}

	in := bindPostInput(c)
	data, err := form.ValidatePost(in, groups, h.opts.MaxImageSize)
	if ve, ok := form.AsValidation(err); ok {
		d.Form = map[string]string{"text": in.Text, "group": in.Group}
		d.Errors = ve
		h.html(c, http.StatusOK, web.PageCreatePost, d)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	p := auth.Current(c)
	if _, err := h.postService.Create(ctx, p.UserID, data); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(p.Username))
}

// PostEdit 仅作者可编辑，其他用户得到 403 且帖子保持不变
func (h *Handler) PostEdit(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := postID(c, "post_id")
	if !ok {
		h.notFound(c)
		return
	}
	post, err := h.postService.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	p := auth.Current(c)
	if post.AuthorID != p.UserID {
		h.forbidden(c)
		return
	}
	groups, err := h.postService.Groups(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	d := &web.Data{Title: "Редактирование записи", Groups: groups, Post: post, IsEdit: true}

	if c.Request.Method != http.MethodPost {
		d.Form = map[string]string{"text": post.Text, "group": groupValue(post.GroupID)}
		h.html(c, http.StatusOK, web.PageCreatePost, d)
		return
	}

	in := bindPostInput(c)
	data, err := form.ValidatePost(in, groups, h.opts.MaxImageSize)
	if ve, ok := form.AsValidation(err); ok {
		d.Form = map[string]string{"text": in.Text, "group": in.Group}
		d.Errors = ve
		h.html(c, http.StatusOK, web.PageCreatePost, d)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if _, err := h.postService.Update(ctx, p.UserID, id, data); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, postURL(id))
}

// AddComment 校验失败时重新渲染详情页并展示错误
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := postID(c, "post_id")
	if !ok {
		h.notFound(c)
		return
	}
	post, err := h.postService.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	in := form.CommentInput{Text: c.PostForm("text")}
	data, err := form.ValidateComment(in)
	if ve, ok := form.AsValidation(err); ok {
		h.renderDetail(c, post, map[string]string{"text": in.Text}, ve)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if _, err := h.commentService.Add(ctx, auth.Current(c).UserID, post.ID, data); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, postURL(post.ID))
}

func bindPostInput(c *gin.Context) form.PostInput {
	in := form.PostInput{Text: c.PostForm("text"), Group: c.PostForm("group")}
	if fh, err := c.FormFile("image"); err == nil {
		in.Image = fh
	}
	return in
}

func groupValue(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}
