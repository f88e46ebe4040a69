package form

import (
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
)

// CommentInput 评论表单原始输入
type CommentInput struct {
	Text string `form:"text" validate:"required"`
}

type CommentData struct {
	Text string
}

func (d CommentData) Apply(c *model.Comment) { c.Text = d.Text }

func ValidateComment(in CommentInput) (CommentData, error) {
	in.Text = strings.TrimSpace(in.Text)
	if ve := check(in); ve != nil {
		return CommentData{}, ve
	}
	return CommentData{Text: in.Text}, nil
}
