package service_test

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/form"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/testutil"
)

type countingCache struct{ clears int }

func (c *countingCache) Clear(context.Context) error {
	c.clears++
	return nil
}

type fakeImages struct{ saved int }

func (f *fakeImages) Save(context.Context, *multipart.FileHeader) (string, error) {
	f.saved++
	return "posts/fake.gif", nil
}

func (f *fakeImages) URL(key string) string { return "/media/" + key }

func newPostService(db *gorm.DB) (service.PostService, *countingCache) {
	cache := &countingCache{}
	svc := service.NewPostService(
		repository.NewPostRepository(db),
		repository.NewGroupRepository(db),
		&fakeImages{},
		cache,
	)
	return svc, cache
}

func TestPostServiceCreate(t *testing.T) {
	db := testutil.NewDB(t)
	svc, cache := newPostService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	group := testutil.CreateGroup(t, db, "g1")

	before, err := svc.List(ctx, repository.PostFilter{}, "")
	require.NoError(t, err)

	p, err := svc.Create(ctx, author.ID, form.PostData{Text: "hello", GroupID: &group.ID, Image: &multipart.FileHeader{Filename: "a.gif"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.clears)
	assert.Equal(t, "posts/fake.gif", p.Image)
	assert.Equal(t, "/media/posts/fake.gif", svc.ImageURL(p.Image))

	after, err := svc.List(ctx, repository.PostFilter{}, "")
	require.NoError(t, err)
	assert.Equal(t, before.Page.Total+1, after.Page.Total)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.Equal(t, group.ID, *got.GroupID)
}

func TestPostServiceUpdateByAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	svc, cache := newPostService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	group := testutil.CreateGroup(t, db, "g1")
	orig := testutil.CreatePost(t, db, author, nil, "before", time.Hour)
	stored, err := svc.Get(ctx, orig.ID)
	require.NoError(t, err)

	p, err := svc.Update(ctx, author.ID, orig.ID, form.PostData{Text: "after", GroupID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.clears)
	assert.Equal(t, "after", p.Text)
	assert.Equal(t, orig.ID, p.ID)
	assert.Equal(t, author.ID, p.AuthorID)
	assert.True(t, stored.PubDate.Equal(p.PubDate))
	require.NotNil(t, p.Group)
	assert.Equal(t, "g1", p.Group.Slug)
}

func TestPostServiceUpdateByStrangerIsForbidden(t *testing.T) {
	db := testutil.NewDB(t)
	svc, cache := newPostService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	stranger := testutil.CreateUser(t, db, "mia")
	orig := testutil.CreatePost(t, db, author, nil, "before", 0)
	stored, err := svc.Get(ctx, orig.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, stranger.ID, orig.ID, form.PostData{Text: "hijack"})
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Zero(t, cache.clears)

	after, err := svc.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Text, after.Text)
	assert.Equal(t, stored.GroupID, after.GroupID)
	assert.Equal(t, stored.Image, after.Image)
	assert.True(t, stored.PubDate.Equal(after.PubDate))
}

func TestPostServiceUpdateMissing(t *testing.T) {
	db := testutil.NewDB(t)
	svc, _ := newPostService(db)
	_, err := svc.Update(context.Background(), "x", 404, form.PostData{Text: "x"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostServicePagination(t *testing.T) {
	db := testutil.NewDB(t)
	svc, _ := newPostService(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	testutil.CreatePosts(t, db, author, nil, 13)

	p1, err := svc.List(ctx, repository.PostFilter{}, "1")
	require.NoError(t, err)
	assert.Len(t, p1.Posts, 10)
	p2, err := svc.List(ctx, repository.PostFilter{}, "2")
	require.NoError(t, err)
	assert.Len(t, p2.Posts, 3)
	p9, err := svc.List(ctx, repository.PostFilter{}, "9")
	require.NoError(t, err)
	assert.Equal(t, 2, p9.Page.Number)
	assert.Len(t, p9.Posts, 3)
}

func TestRelationshipService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewRelationshipService(repository.NewFollowRepository(db))
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")

	assert.ErrorIs(t, svc.Follow(ctx, a.ID, a.ID), service.ErrFollowSelf)
	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)

	ok, err := svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.IsFollowing(ctx, "", b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	fans, err := svc.ListFans(ctx, b.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, fans, 1)
	assert.Equal(t, "a", fans[0].Username)
	following, err := svc.ListFollowing(ctx, a.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "b", following[0].Username)

	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))
	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))
	ok, err = svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommentService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewCommentService(repository.NewPostRepository(db), repository.NewCommentRepository(db))
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "leo")
	p := testutil.CreatePost(t, db, author, nil, "A", 0)

	c, err := svc.Add(ctx, author.ID, p.ID, form.CommentData{Text: "nice"})
	require.NoError(t, err)
	assert.False(t, c.Created.IsZero())

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "nice", list[0].Text)

	_, err = svc.Add(ctx, author.ID, p.ID+1, form.CommentData{Text: "lost"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewUserService(repository.NewUserRepository(db), repository.NewPostRepository(db), repository.NewFollowRepository(db), repository.NewCommentRepository(db))
	ctx := context.Background()

	u, err := svc.SignUp(ctx, form.SignupData{Username: "leo", Password: "password1"})
	require.NoError(t, err)
	assert.NotEqual(t, "password1", u.Password)

	_, err = svc.SignUp(ctx, form.SignupData{Username: "leo", Password: "password2"})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	got, err := svc.Authenticate(ctx, "leo", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ghost", "password1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	posts := testutil.CreatePosts(t, db, u, nil, 2)
	require.NoError(t, repository.NewCommentRepository(db).Create(ctx, &model.Comment{PostID: posts[0].ID, AuthorID: u.ID, Text: "hi"}))
	st, err := svc.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Posts)
	assert.EqualValues(t, 1, st.Comments)
	assert.Zero(t, st.Followers)
}
