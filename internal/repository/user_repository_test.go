package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/testutil"
)

func TestUserUsernameUnique(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "leo", Password: "x"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Len(t, u.ID, 36)

	err := repo.Create(ctx, &model.User{Username: "leo", Password: "y"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	got, err := repo.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGroupSlugUnique(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Group{Title: "B", Slug: "test_slug"}))
	err := repo.Create(ctx, &model.Group{Title: "A", Slug: "test_slug"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	g, err := repo.GetBySlug(ctx, "test_slug")
	require.NoError(t, err)
	assert.Equal(t, "B", g.Title)

	_, err = repo.GetBySlug(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &model.Group{Title: "A", Slug: "other"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Title)
}

func TestCommentsListedOldestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewCommentRepository(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, author, nil, "A", 0)

	require.NoError(t, repo.Create(ctx, &model.Comment{PostID: p.ID, AuthorID: author.ID, Text: "first"}))
	require.NoError(t, repo.Create(ctx, &model.Comment{PostID: p.ID, AuthorID: author.ID, Text: "second"}))

	list, err := repo.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "leo", list[1].Author.Username)

	n, err := repo.CountByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
