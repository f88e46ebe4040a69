package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/yatube/internal/model"
)

// PostFilter 列表范围：全部、某社区、某作者、某用户的关注流，最多设置一项
type PostFilter struct {
	GroupID    uint
	AuthorID   string
	FollowerID string
}

// PostRepository 帖子仓储。列表均按 model.DefaultOrder 排序并预加载作者与社区
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	// Update 只写 text、group_id、image；id、author、pub_date 不变
	Update(ctx context.Context, p *model.Post) error
	Count(ctx context.Context, f PostFilter) (int64, error)
	List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
}

func (r *postRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var cnt int64
	err := r.scope(ctx, f).Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.scope(ctx, f).
		Preload("Author").
		Preload("Group").
		Order(model.DefaultOrder).
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) scope(ctx context.Context, f PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx)
	switch {
	case f.GroupID != 0:
		q = q.Where("group_id = ?", f.GroupID)
	case f.AuthorID != "":
		q = q.Where("author_id = ?", f.AuthorID)
	case f.FollowerID != "":
		sub := r.db.Model(&model.Follow{}).Select("followee_id").Where("follower_id = ?", f.FollowerID)
		q = q.Where("author_id IN (?)", sub)
	}
	return q
}
