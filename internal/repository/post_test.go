package repository_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/testutil"
)

func TestPostRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	generated := testutil.InsertPostsOf(ctx, testutil.User2.ID, testutil.Group2.ID, 5)
	postRepo := repository.NewPostRepository()

	count, err := postRepo.Count(ctx, repository.PostFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(6), count)

	posts, err := postRepo.GetList(ctx, repository.PostFilter{}, 0, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, generated[4].ID, posts[0].ID)
	require.Equal(t, generated[3].ID, posts[1].ID)
	require.Equal(t, testutil.User2.Username, posts[0].Author.Username)
	require.Equal(t, testutil.Group2.Slug, posts[0].Group.Slug)

	posts, err = postRepo.GetList(ctx, repository.PostFilter{}, 3, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, testutil.Post1.ID, posts[2].ID)

	count, err = postRepo.Count(ctx, repository.PostFilter{GroupID: testutil.Group1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = postRepo.Count(ctx, repository.PostFilter{AuthorID: testutil.User2.ID, GroupID: testutil.Group2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(5), count)
}

func TestPostRepository_FollowerFilter(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertPostsOf(ctx, testutil.User2.ID, "", 2)
	postRepo := repository.NewPostRepository()
	followRepo := repository.NewFollowRepository()

	require.NoError(t, followRepo.Create(ctx, &entity.Follow{UserID: testutil.User3.ID, AuthorID: testutil.User2.ID}))

	posts, err := postRepo.GetList(ctx, repository.PostFilter{FollowerID: testutil.User3.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, post := range posts {
		require.Equal(t, testutil.User2.ID, post.AuthorID)
		require.Empty(t, post.Group.ID)
	}

	count, err := postRepo.Count(ctx, repository.PostFilter{FollowerID: testutil.User1.ID})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPostRepository_UpdateByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	postRepo := repository.NewPostRepository()

	err := postRepo.UpdateByID(ctx, testutil.Post1.ID, &entity.Post{Text: "Updated"})
	require.NoError(t, err)

	post, err := postRepo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, "Updated", post.Text)
	require.False(t, post.GroupID.Valid)

	err = postRepo.UpdateByID(ctx, testutil.Post1.ID, &entity.Post{
		Text:    "With image",
		Image:   "/media/posts/a.png",
		GroupID: sql.NullString{Valid: true, String: testutil.Group2.ID},
	})
	require.NoError(t, err)

	err = postRepo.UpdateByID(ctx, testutil.Post1.ID, &entity.Post{
		Text:    "Keeps image",
		GroupID: sql.NullString{Valid: true, String: testutil.Group2.ID},
	})
	require.NoError(t, err)

	post, err = postRepo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, "Keeps image", post.Text)
	require.Equal(t, "/media/posts/a.png", post.Image)
	require.Equal(t, testutil.Group2.Title, post.Group.Title)
}
