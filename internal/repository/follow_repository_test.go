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

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewFollowRepository(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))
	require.NoError(t, repo.Create(ctx, a.ID, b.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)

	ok, err := repo.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowUniqueIndexRejectsRawDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")

	require.NoError(t, db.Omit("Follower", "Followee").Create(&model.Follow{FollowerID: a.ID, FolloweeID: b.ID}).Error)
	err := db.Omit("Follower", "Followee").Create(&model.Follow{FollowerID: a.ID, FolloweeID: b.ID}).Error
	assert.Error(t, err)
}

func TestFollowDeleteMissingIsNoop(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewFollowRepository(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")

	n, err := repo.Delete(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Create(ctx, a.ID, b.ID))
	n, err = repo.Delete(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFollowTraversal(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewFollowRepository(db)
	ctx := context.Background()
	star := testutil.CreateUser(t, db, "star")
	f1 := testutil.CreateUser(t, db, "f1")
	f2 := testutil.CreateUser(t, db, "f2")
	require.NoError(t, repo.Create(ctx, f1.ID, star.ID))
	require.NoError(t, repo.Create(ctx, f2.ID, star.ID))
	require.NoError(t, repo.Create(ctx, star.ID, f1.ID))

	followers, err := repo.ListFollowers(ctx, star.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	names := []string{followers[0].Follower.Username, followers[1].Follower.Username}
	assert.ElementsMatch(t, []string{"f1", "f2"}, names)

	followings, err := repo.ListFollowings(ctx, star.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, followings, 1)
	assert.Equal(t, "f1", followings[0].Followee.Username)

	n, err := repo.CountFollowers(ctx, star.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = repo.CountFollowings(ctx, f2.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
