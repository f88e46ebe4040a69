package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// GroupRepository 社区只在带外创建（cmd/seed），视图层只读
type GroupRepository interface {
	Create(ctx context.Context, g *model.Group) error
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	Delete(ctx context.Context, id uint) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) Create(ctx context.Context, g *model.Group) error {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Group{}).Where("slug = ?", g.Slug).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return ErrAlreadyExists
	}
	return duplicate(r.db.WithContext(ctx).Create(g).Error)
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]model.Group, error) {
	var res []model.Group
	err := r.db.WithContext(ctx).Order("title").Find(&res).Error
	return res, err
}

// Delete 删除社区；其下帖子的 group_id 由外键置空
func (r *groupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Group{}).Error
}
