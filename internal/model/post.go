package model

import "time"

// Post 帖子。PubDate 创建时写入且不再修改；默认按 pub_date 倒序
type Post struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"index;not null"`
	AuthorID string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID  *uint     `gorm:"index"`
	Group    *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Image    string    `gorm:"type:varchar(255)"` // 对象存储中的 key，空表示无图
}

func (Post) TableName() string { return "posts" }

// DefaultOrder 列表默认排序
const DefaultOrder = "pub_date DESC, id DESC"

// Excerpt 返回前 15 个字符，用于日志和标题
func (p *Post) Excerpt() string {
	r := []rune(p.Text)
	if len(r) > 15 {
		return string(r[:15])
	}
	return p.Text
}
