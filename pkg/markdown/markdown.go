package markdown

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// goldmark.Markdown 构造后只读，可并发复用
var (
	md     goldmark.Markdown
	mdOnce sync.Once
)

func parser() goldmark.Markdown {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
	return md
}

// Render 将帖子正文渲染为 HTML。原始 HTML 不会透传（goldmark 默认不启用 Unsafe）。
func Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := parser().Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
