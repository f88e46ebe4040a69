// Package testutil 提供测试用的内存数据库与种子数据
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

// NewDB 打开开启外键的 sqlite 内存库并完成迁移。
// 单连接保证所有查询落在同一个内存库上。
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := repository.Migrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser 直接写入用户，密码字段为占位值
func CreateUser(tb testing.TB, db *gorm.DB, username string) *model.User {
	tb.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		tb.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateGroup(tb testing.TB, db *gorm.DB, slug string) *model.Group {
	tb.Helper()
	g := &model.Group{Title: "Группа " + slug, Slug: slug, Description: "описание " + slug}
	if err := repository.NewGroupRepository(db).Create(context.Background(), g); err != nil {
		tb.Fatalf("create group %s: %v", slug, err)
	}
	return g
}

// CreatePost 写入帖子；age 越大 pub_date 越早，便于断言排序
func CreatePost(tb testing.TB, db *gorm.DB, author *model.User, group *model.Group, text string, age time.Duration) *model.Post {
	tb.Helper()
	p := &model.Post{Text: text, AuthorID: author.ID, PubDate: time.Now().UTC().Add(-age)}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := repository.NewPostRepository(db).Create(context.Background(), p); err != nil {
		tb.Fatalf("create post: %v", err)
	}
	return p
}

// CreatePosts 批量写入 n 条帖子，第 i 条早 i 分钟
func CreatePosts(tb testing.TB, db *gorm.DB, author *model.User, group *model.Group, n int) []*model.Post {
	tb.Helper()
	res := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		res[i] = CreatePost(tb, db, author, group, fmt.Sprintf("post %02d", i), time.Duration(i)*time.Minute)
	}
	return res
}
