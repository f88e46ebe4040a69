package form

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/storage"
)

// DefaultMaxImageSize 图片上限 5 MiB
const DefaultMaxImageSize int64 = 5 << 20

// PostInput 帖子表单原始输入
type PostInput struct {
	Text  string                `form:"text" validate:"required"`
	Group string                `form:"group" validate:"omitempty,numeric"`
	Image *multipart.FileHeader `form:"image" validate:"-"`
}

// PostData 校验通过的帖子字段
type PostData struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

// Apply 将校验后的字段写到新建或已有的帖子上；图片 key 由调用方上传后设置
func (d PostData) Apply(p *model.Post) {
	p.Text = d.Text
	p.GroupID = d.GroupID
}

// ValidatePost 校验帖子表单。group 必须为空或是 groups 中某个社区的 ID。
func ValidatePost(in PostInput, groups []model.Group, maxImageSize int64) (PostData, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Group = strings.TrimSpace(in.Group)

	ve := check(in)
	if ve == nil {
		ve = &ValidationError{}
	}

	var groupID *uint
	if in.Group != "" && ve.Get("group") == "" {
		id, err := strconv.ParseUint(in.Group, 10, 64)
		if err != nil || !containsGroup(groups, uint(id)) {
			ve.Add("group", "Выберите корректный вариант. Этого варианта нет среди допустимых значений.")
		} else {
			gid := uint(id)
			groupID = &gid
		}
	}

	if in.Image != nil {
		if msg := checkImage(in.Image, maxImageSize); msg != "" {
			ve.Add("image", msg)
		}
	}

	if !ve.empty() {
		return PostData{}, ve
	}
	return PostData{Text: in.Text, GroupID: groupID, Image: in.Image}, nil
}

func containsGroup(groups []model.Group, id uint) bool {
	for _, g := range groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

func checkImage(fh *multipart.FileHeader, maxSize int64) string {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if fh.Size > maxSize {
		return fmt.Sprintf("Размер файла не должен превышать %d байт.", maxSize)
	}
	if _, _, err := storage.SniffFile(fh); err != nil {
		return "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	}
	return ""
}
