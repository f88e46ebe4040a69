// seed 生成演示数据：社区、用户、帖子和关注关系。
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return v
}

func mustDo(err error) { must(struct{}{}, err) }

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	cfgPath := flags.StringP("config", "c", "", "配置文件路径")
	groups := flags.Int("groups", 3, "社区数量")
	users := flags.Int("users", 20, "用户数量")
	posts := flags.Int("posts", 200, "帖子数量")
	follows := flags.Int("follows", 5, "每个用户关注的作者数")
	password := flags.String("password", "password", "所有用户的登录密码")
	_ = flags.Parse(os.Args[1:])

	cfg := must(config.Load(*cfgPath))
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()
	mustDo(repository.Migrate(db))

	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))
	run := uuid.NewString()[:6]

	groupRepo := repository.NewGroupRepository(db)
	groupRows := make([]*model.Group, *groups)
	for i := range groupRows {
		g := &model.Group{
			Title:       fmt.Sprintf("Сообщество %d", i+1),
			Slug:        fmt.Sprintf("group-%s-%d", run, i+1),
			Description: "Сгенерировано командой seed.",
		}
		mustDo(groupRepo.Create(ctx, g))
		groupRows[i] = g
	}

	hash := must(auth.HashPassword(*password))
	userRows := make([]model.User, *users)
	for i := range userRows {
		userRows[i] = model.User{
			ID:       uuid.NewString(),
			Username: fmt.Sprintf("user_%s_%d", run, i),
			Email:    fmt.Sprintf("user_%s_%d@example.com", run, i),
			Password: hash,
		}
	}
	if len(userRows) > 0 {
		mustDo(db.WithContext(ctx).CreateInBatches(&userRows, 1000).Error)
	}

	now := time.Now().UTC()
	postRows := make([]model.Post, 0, *posts)
	for i := 0; i < *posts && len(userRows) > 0; i++ {
		p := model.Post{
			Text:     fmt.Sprintf("Запись номер %d.\n\nСгенерирована для **проверки** пагинации.", i),
			PubDate:  now.Add(-time.Duration(i) * time.Minute),
			AuthorID: userRows[rnd.Intn(len(userRows))].ID,
		}
		if len(groupRows) > 0 && rnd.Float64() < 0.7 {
			gid := groupRows[rnd.Intn(len(groupRows))].ID
			p.GroupID = &gid
		}
		postRows = append(postRows, p)
	}
	if len(postRows) > 0 {
		mustDo(db.WithContext(ctx).Omit("Author", "Group").CreateInBatches(&postRows, 1000).Error)
	}

	followRepo := repository.NewFollowRepository(db)
	var followCount int
	for i := range userRows {
		for j := 0; j < *follows; j++ {
			target := userRows[rnd.Intn(len(userRows))]
			if target.ID == userRows[i].ID {
				continue
			}
			mustDo(followRepo.Create(ctx, userRows[i].ID, target.ID))
			followCount++
		}
	}

	fmt.Printf("seeded groups=%d users=%d posts=%d follows<=%d (password %q)\n",
		len(groupRows), len(userRows), len(postRows), followCount, *password)
}
