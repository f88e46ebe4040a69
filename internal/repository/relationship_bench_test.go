package repository_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/testutil"
)

func BenchmarkFollowWrite(b *testing.B) {
	db := testutil.NewDB(b)
	followRepo := repository.NewFollowRepository(db)
	ctx := context.Background()

	// 预创建部分用户
	users := make([]model.User, 1000)
	for i := range users {
		users[i] = model.User{ID: fmt.Sprintf("u%04d", i), Username: fmt.Sprintf("u%04d", i), Email: fmt.Sprintf("u%04d@example.com", i), Password: "p"}
	}
	if err := db.CreateInBatches(&users, 200).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}

	rnd := rand.New(rand.NewSource(42))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rnd.Intn(len(users))].ID
		to := users[rnd.Intn(len(users))].ID
		if from == to {
			continue
		}
		_ = followRepo.Create(ctx, from, to)
	}
}

func BenchmarkFeedAndFollowers(b *testing.B) {
	db := testutil.NewDB(b)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	ctx := context.Background()

	// 构造：u0 关注 N 个作者，每个作者 3 条帖子；同时 N 个作者都关注 u0
	const N = 500
	u0 := testutil.CreateUser(b, db, "u0")
	for i := 1; i <= N; i++ {
		author := testutil.CreateUser(b, db, fmt.Sprintf("u%d", i))
		testutil.CreatePosts(b, db, author, nil, 3)
		_ = followRepo.Create(ctx, u0.ID, author.ID)
		_ = followRepo.Create(ctx, author.ID, u0.ID)
	}

	b.ResetTimer()
	b.Run("FeedFirstPage", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = postRepo.List(ctx, repository.PostFilter{FollowerID: u0.ID}, 0, 10)
		}
	})

	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = followRepo.ListFollowers(ctx, u0.ID, 0, 50)
		}
	})
}
