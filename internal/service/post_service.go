package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// Invalidator 帖子变更后需要失效的缓存
type Invalidator interface {
	Clear(ctx context.Context) error
}

// PostPage 一页帖子及分页元数据
type PostPage struct {
	Posts []*model.Post
	Page  pagination.Page
}

// PostService 帖子服务。写操作成功后清空页面缓存
type PostService interface {
	Get(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context, f repository.PostFilter, rawPage string) (*PostPage, error)
	Create(ctx context.Context, authorID string, data form.PostData) (*model.Post, error)
	// Update 仅作者可编辑，否则返回 ErrForbidden 且不做任何修改
	Update(ctx context.Context, actorID string, postID uint, data form.PostData) (*model.Post, error)
	Groups(ctx context.Context) ([]model.Group, error)
	GroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	ImageURL(key string) string
}

type postService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
	images storage.ImageStore
	cache  Invalidator
}

func NewPostService(posts repository.PostRepository, groups repository.GroupRepository, images storage.ImageStore, cache Invalidator) PostService {
	return &postService{posts: posts, groups: groups, images: images, cache: cache}
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context, f repository.PostFilter, rawPage string) (*PostPage, error) {
	total, err := s.posts.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	page := pagination.New(rawPage, total, pagination.PerPage)
	posts, err := s.posts.List(ctx, f, page.Offset(), page.Limit())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

func (s *postService) Create(ctx context.Context, authorID string, data form.PostData) (*model.Post, error) {
	p := &model.Post{AuthorID: authorID}
	data.Apply(p)
	if err := s.saveImage(ctx, p, data); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	logger.Info("post created", zap.Uint("post_id", p.ID), zap.String("author_id", authorID))
	s.invalidate(ctx)
	return p, nil
}

func (s *postService) Update(ctx context.Context, actorID string, postID uint, data form.PostData) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != actorID {
		logger.Warn("edit rejected for non-author", zap.Uint("post_id", postID), zap.String("actor_id", actorID))
		return nil, ErrForbidden
	}
	data.Apply(p)
	if err := s.saveImage(ctx, p, data); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}
	s.invalidate(ctx)
	return s.posts.GetByID(ctx, postID)
}

func (s *postService) Groups(ctx context.Context) ([]model.Group, error) {
	return s.groups.List(ctx)
}

func (s *postService) GroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return s.groups.GetBySlug(ctx, slug)
}

func (s *postService) ImageURL(key string) string {
	if s.images == nil {
		return ""
	}
	return s.images.URL(key)
}

func (s *postService) saveImage(ctx context.Context, p *model.Post, data form.PostData) error {
	if data.Image == nil || s.images == nil {
		return nil
	}
	key, err := s.images.Save(ctx, data.Image)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	p.Image = key
	return nil
}

// invalidate 缓存失效失败只记录日志，页面会在 TTL 后自然刷新
func (s *postService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		logger.Warn("page cache clear failed", zap.Error(err))
	}
}
