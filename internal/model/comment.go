package model

import "time"

// Comment 评论，随帖子级联删除
type Comment struct {
	ID       uint      `gorm:"primaryKey"`
	PostID   uint      `gorm:"index:idx_comment_post;not null"`
	Post     Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID string    `gorm:"type:varchar(36);index;not null"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"index;not null"`
}

func (Comment) TableName() string { return "comments" }
