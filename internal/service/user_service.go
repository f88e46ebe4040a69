package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

// ProfileStats 个人页统计
type ProfileStats struct {
	Posts     int64
	Followers int64
	Following int64
	Comments  int64
}

type UserService interface {
	SignUp(ctx context.Context, data form.SignupData) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Stats(ctx context.Context, userID string) (ProfileStats, error)
}

type userService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	follows  repository.FollowRepository
	comments repository.CommentRepository
}

func NewUserService(users repository.UserRepository, posts repository.PostRepository, follows repository.FollowRepository, comments repository.CommentRepository) UserService {
	return &userService{users: users, posts: posts, follows: follows, comments: comments}
}

func (s *userService) SignUp(ctx context.Context, data form.SignupData) (*model.User, error) {
	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Password:  hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *userService) Stats(ctx context.Context, userID string) (ProfileStats, error) {
	var st ProfileStats
	var err error
	if st.Posts, err = s.posts.Count(ctx, repository.PostFilter{AuthorID: userID}); err != nil {
		return st, err
	}
	if st.Followers, err = s.follows.CountFollowers(ctx, userID); err != nil {
		return st, err
	}
	if st.Following, err = s.follows.CountFollowings(ctx, userID); err != nil {
		return st, err
	}
	if st.Comments, err = s.comments.CountByAuthor(ctx, userID); err != nil {
		return st, err
	}
	return st, nil
}
