package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plain password of every fixture user.
const FixturePassword = "Qwerty12345"

var (
	// Users
	User1 = &entity.User{
		Base:      entity.Base{ID: "user1"},
		Username:  "leo",
		FirstName: "Leo",
		LastName:  "Tolstoy",
		Email:     "leo@example.com",
	}

	User2 = &entity.User{
		Base:     entity.Base{ID: "user2"},
		Username: "auth",
		Email:    "auth@example.com",
	}

	User3 = &entity.User{
		Base:     entity.Base{ID: "user3"},
		Username: "noname",
	}

	Users = []*entity.User{User1, User2, User3}

	// Groups
	Group1 = &entity.Group{
		Base:        entity.Base{ID: "group1"},
		Title:       "Test group",
		Slug:        "test-slug",
		Description: "Test description",
	}

	Group2 = &entity.Group{
		Base:        entity.Base{ID: "group2"},
		Title:       "Other group",
		Slug:        "other-slug",
		Description: "Other description",
	}

	Groups = []*entity.Group{Group1, Group2}

	// Posts
	Post1 = &entity.Post{
		SnowFlakeBase: entity.SnowFlakeBase{
			ID:        1,
			CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Text:     "Test post",
		AuthorID: User1.ID,
		GroupID:  sql.NullString{Valid: true, String: Group1.ID},
	}

	Posts = []*entity.Post{Post1}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertGroups(ctx)
	InsertPosts(ctx)
}

func InsertUsers(ctx context.Context) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository()
	for _, user := range Users {
		u := *user
		u.Password = string(hashed)
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}
}

func InsertGroups(ctx context.Context) {
	groupRepo := repository.NewGroupRepository()
	for _, group := range Groups {
		g := *group
		if err := groupRepo.Create(ctx, &g); err != nil {
			panic(err)
		}
	}
}

func InsertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	for _, post := range Posts {
		p := *post
		if err := postRepo.Create(ctx, &p); err != nil {
			panic(err)
		}
	}
}

// InsertPostsOf creates n posts of the author, one second apart, all newer
// than the fixture posts.
func InsertPostsOf(ctx context.Context, authorID string, groupID string, n int) []entity.Post {
	postRepo := repository.NewPostRepository()
	base := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	result := make([]entity.Post, 0, n)
	for i := 0; i < n; i++ {
		post := entity.Post{
			SnowFlakeBase: entity.SnowFlakeBase{
				ID:        NextID(ctx),
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			},
			Text:     "Generated post",
			AuthorID: authorID,
			GroupID:  sql.NullString{Valid: groupID != "", String: groupID},
		}

		if err := postRepo.Create(ctx, &post); err != nil {
			panic(err)
		}

		result = append(result, post)
	}

	return result
}
