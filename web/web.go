// Package web 内嵌 HTML 模板并负责渲染页面。
// 每个页面与 base 布局和 includes 下的片段组成独立的模板集，启动时一次解析。
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/pkg/markdown"
)

//go:embed templates
var files embed.FS

// 页面模板名
const (
	PageIndex      = "posts/index.html"
	PageGroupList  = "posts/group_list.html"
	PageProfile    = "posts/profile.html"
	PagePostDetail = "posts/post_detail.html"
	PageCreatePost = "posts/create_post.html"
	PageFollow     = "posts/follow.html"
	PageAuthor     = "about/author.html"
	PageTech       = "about/tech.html"
	PageLogin      = "users/login.html"
	PageSignup     = "users/signup.html"
	PageError      = "error.html"
)

// Data 页面渲染数据
type Data struct {
	Title string
	Path  string
	User  *auth.Principal

	Page  *pagination.Page
	Posts []*model.Post

	Post     *model.Post
	Comments []*model.Comment
	Group    *model.Group
	Groups   []model.Group

	Author         *model.User
	Following      bool
	PostsCount     int64
	FollowersCount int64
	FollowingCount int64
	CommentsCount  int64

	Form   map[string]string
	Errors *form.ValidationError
	IsEdit bool
	Next   string

	// Index / Follow 控制切换标签的高亮
	Index  bool
	Follow bool

	AboutTitle string
	AboutText  string

	Status  int
	Message string
}

// Renderer 持有已解析的模板集
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer 解析全部页面模板。imageURL 把图片 key 转换为地址
func NewRenderer(imageURL func(string) string) (*Renderer, error) {
	if imageURL == nil {
		imageURL = func(k string) string { return k }
	}
	funcs := template.FuncMap{
		"markdown":   markdown.Render,
		"formatDate": formatDate,
		"imageURL":   imageURL,
		"truncate":   truncate,
	}

	partials, err := fs.Glob(files, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{
		PageIndex, PageGroupList, PageProfile, PagePostDetail, PageCreatePost, PageFollow,
		PageAuthor, PageTech, PageLogin, PageSignup, PageError,
	} {
		patterns := append([]string{"templates/base.html", path.Join("templates", name)}, partials...)
		t, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(files, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render 先渲染到缓冲区，出错时不会写出半页
func (r *Renderer) Render(w io.Writer, name string, d *Data) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	if d == nil {
		d = &Data{}
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", d); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006 15:04")
}

func truncate(n int, s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
