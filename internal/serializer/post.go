// Package serializer 将帖子转换为对外 JSON 表示。
package serializer

import (
	"time"

	"github.com/d60-Lab/yatube/internal/model"
)

// Post 帖子的 API 表示
type Post struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  string    `json:"author"`
	Group   *string   `json:"group"`
	Image   *string   `json:"image"`
}

// URLFunc 将图片 key 转为可访问地址
type URLFunc func(key string) string

// NewPost 需要预加载 Author 和 Group
func NewPost(p *model.Post, url URLFunc) Post {
	out := Post{
		ID:      p.ID,
		Text:    p.Text,
		PubDate: p.PubDate.UTC(),
		Author:  p.Author.Username,
	}
	if p.Group != nil {
		slug := p.Group.Slug
		out.Group = &slug
	}
	if p.Image != "" && url != nil {
		u := url(p.Image)
		out.Image = &u
	}
	return out
}

func NewPosts(posts []*model.Post, url URLFunc) []Post {
	res := make([]Post, 0, len(posts))
	for _, p := range posts {
		res = append(res, NewPost(p, url))
	}
	return res
}
