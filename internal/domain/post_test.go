package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/mocks"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/testutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func newTestPostDomain(s storage.Storage) PostDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewGroupRepository(),
		repository.NewUserRepository(),
		repository.NewCommentRepository(),
		repository.NewFollowRepository(),
		repository.NewFileRepository(),
		s,
		NewFollowDomain(repository.NewFollowRepository(), repository.NewUserRepository()),
	)
}

func Test_postDomain_Index(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	generated := testutil.InsertPostsOf(ctx, testutil.User2.ID, testutil.Group2.ID, 12)
	domain := newTestPostDomain(nil)

	resp, err := domain.Index(ctx, &model.IndexRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 10)
	require.Equal(t, 1, resp.Page.Number)
	require.Equal(t, 2, resp.Page.NumPages)
	require.Equal(t, generated[11].ID, resp.Posts[0].ID)
	require.Equal(t, testutil.User2.Username, resp.Posts[0].Author.Username)
	require.Equal(t, testutil.Group2.Slug, resp.Posts[0].Group.Slug)

	resp, err = domain.Index(ctx, &model.IndexRequest{Page: "2"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 3)
	require.Equal(t, testutil.Post1.ID, resp.Posts[2].ID)

	tests := []struct {
		name string
		page string
		want int
	}{
		{name: "below the first page", page: "0", want: 1},
		{name: "negative", page: "-3", want: 1},
		{name: "not a number", page: "abc", want: 1},
		{name: "past the last page", page: "100", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := domain.Index(ctx, &model.IndexRequest{Page: tt.page})
			require.NoError(t, err)
			require.Equal(t, tt.want, resp.Page.Number)
		})
	}
}

func Test_postDomain_List(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	testutil.InsertPostsOf(ctx, testutil.User2.ID, "", 3)
	domain := newTestPostDomain(nil)

	tests := []struct {
		name    string
		scope   model.Scope
		want    int
		wantErr errorx.Code
	}{
		{name: "all", scope: model.Scope{Kind: model.ScopeAll}, want: 4},
		{name: "group", scope: model.Scope{Kind: model.ScopeGroup, GroupSlug: testutil.Group1.Slug}, want: 1},
		{name: "empty group", scope: model.Scope{Kind: model.ScopeGroup, GroupSlug: testutil.Group2.Slug}, want: 0},
		{name: "author", scope: model.Scope{Kind: model.ScopeAuthor, Username: testutil.User2.Username}, want: 3},
		{name: "followed nobody", scope: model.Scope{Kind: model.ScopeFollowed, ViewerID: testutil.User3.ID}, want: 0},
		{
			name:    "unknown group",
			scope:   model.Scope{Kind: model.ScopeGroup, GroupSlug: "unknown"},
			wantErr: errorx.NotFound,
		},
		{
			name:    "unknown author",
			scope:   model.Scope{Kind: model.ScopeAuthor, Username: "unknown"},
			wantErr: errorx.NotFound,
		},
		{
			name:    "followed by anonymous",
			scope:   model.Scope{Kind: model.ScopeFollowed},
			wantErr: errorx.Unauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := domain.List(ctx, tt.scope, "1")
			if tt.wantErr != 0 {
				require.True(t, errorx.Is(err, tt.wantErr), "got error %v", err)
				return
			}

			require.NoError(t, err)
			require.Len(t, page.Posts, tt.want)
			require.Equal(t, tt.want, page.Page.Total)
		})
	}
}

func Test_postDomain_GroupList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPostDomain(nil)

	resp, err := domain.GroupList(ctx, &model.GroupListRequest{Slug: testutil.Group1.Slug})
	require.NoError(t, err)
	require.Equal(t, testutil.Group1.Title, resp.Group.Title)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.Text, resp.Posts[0].Text)

	_, err = domain.GroupList(ctx, &model.GroupListRequest{Slug: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_postDomain_Profile(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPostDomain(nil)

	followRepo := repository.NewFollowRepository()
	require.NoError(t, followRepo.Create(ctx, &entity.Follow{UserID: testutil.User2.ID, AuthorID: testutil.User1.ID}))

	resp, err := domain.Profile(ctx, &model.ProfileRequest{Username: testutil.User1.Username})
	require.NoError(t, err)
	require.Equal(t, "Leo Tolstoy", resp.Author.FullName)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, int64(1), resp.Followers)
	require.Equal(t, int64(0), resp.Following)
	require.False(t, resp.CanFollow)

	viewerCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err = domain.Profile(viewerCtx, &model.ProfileRequest{Username: testutil.User1.Username})
	require.NoError(t, err)
	require.True(t, resp.CanFollow)
	require.True(t, resp.IsFollowing)

	ownerCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err = domain.Profile(ownerCtx, &model.ProfileRequest{Username: testutil.User1.Username})
	require.NoError(t, err)
	require.False(t, resp.CanFollow)

	require.NoError(t, followRepo.Delete(ctx, testutil.User2.ID, testutil.User1.ID))
	resp, err = domain.Profile(viewerCtx, &model.ProfileRequest{Username: testutil.User1.Username, Page: "100"})
	require.NoError(t, err)
	require.True(t, resp.CanFollow)
	require.False(t, resp.IsFollowing)
	require.Equal(t, 1, resp.Page.Number)
	require.Equal(t, testutil.User1.Username, resp.Author.Username)

	_, err = domain.Profile(ctx, &model.ProfileRequest{Username: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_postDomain_FollowIndex(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPostDomain(nil)

	followRepo := repository.NewFollowRepository()
	require.NoError(t, followRepo.Create(ctx, &entity.Follow{UserID: testutil.User2.ID, AuthorID: testutil.User1.ID}))

	resp, err := domain.FollowIndex(testutil.MockContextWithUserID(ctx, testutil.User2.ID), &model.FollowIndexRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)

	resp, err = domain.FollowIndex(testutil.MockContextWithUserID(ctx, testutil.User3.ID), &model.FollowIndexRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Posts)
}

func Test_postDomain_Detail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPostDomain(nil)

	commentRepo := repository.NewCommentRepository()
	require.NoError(t, commentRepo.Create(ctx, &entity.Comment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: testutil.NextID(ctx)},
		Text:          "Nice post",
		PostID:        testutil.Post1.ID,
		AuthorID:      testutil.User2.ID,
	}))

	resp, err := domain.Detail(ctx, &model.PostDetailRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Text, resp.Post.Text)
	require.Equal(t, int64(1), resp.AuthorPostCount)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, testutil.User2.Username, resp.Comments[0].Author.Username)
	require.False(t, resp.IsAuthor)
	require.False(t, resp.CanComment)

	resp, err = domain.Detail(testutil.MockContextWithUserID(ctx, testutil.User1.ID),
		&model.PostDetailRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.IsAuthor)
	require.True(t, resp.CanComment)

	_, err = domain.Detail(ctx, &model.PostDetailRequest{PostID: 404})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func countPosts(t *testing.T, ctx context.Context) int64 {
	count, err := repository.NewPostRepository().Count(ctx, repository.PostFilter{})
	require.NoError(t, err)
	return count
}

func Test_postDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	domain := newTestPostDomain(nil)

	form, err := domain.CreateForm(ctx, &model.CreatePostFormRequest{})
	require.NoError(t, err)
	require.Len(t, form.Groups, 2)
	require.False(t, form.IsEdit)

	resp, err := domain.Create(ctx, &model.CreatePostRequest{Text: "  New post  ", Group: testutil.Group2.ID})
	require.NoError(t, err)
	require.Equal(t, "/profile/leo/", resp.RedirectURL)
	require.Equal(t, int64(2), countPosts(t, ctx))

	page, err := domain.List(ctx, model.Scope{Kind: model.ScopeGroup, GroupSlug: testutil.Group2.Slug}, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.Equal(t, "New post", page.Posts[0].Text)
	require.Equal(t, testutil.User1.ID, page.Posts[0].Author.ID)

	resp, err = domain.Create(ctx, &model.CreatePostRequest{Text: "Without group"})
	require.NoError(t, err)
	require.Equal(t, "/profile/leo/", resp.RedirectURL)
	require.Equal(t, int64(3), countPosts(t, ctx))
}

func Test_postDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	domain := newTestPostDomain(nil)

	resp, err := domain.Create(ctx, &model.CreatePostRequest{Text: "   ", Group: "unknown"})
	require.NoError(t, err)
	require.Empty(t, resp.RedirectURL)
	require.True(t, resp.Errors.Has("text"))
	require.True(t, resp.Errors.Has("group"))
	require.Len(t, resp.Groups, 2)
	require.Equal(t, int64(1), countPosts(t, ctx))
}

func Test_postDomain_Create_WithImage(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	req := testutil.NewMultipartRequest("/create/", map[string]string{"text": "With image"},
		"image", "small.png", testutil.GeneratePNG(20, 10))
	ctx = xcontext.WithHTTPRequest(ctx, req)

	s := &mocks.Storage{}
	s.On("Upload", mock.Anything, mock.MatchedBy(func(obj *storage.UploadObject) bool {
		return obj.Mime == "image/png" && obj.Prefix == postImagePrefix
	})).Return(&storage.UploadResponse{Url: "/media/posts/small.png", FileName: "small.png"}, nil)

	domain := newTestPostDomain(s)
	resp, err := domain.Create(ctx, &model.CreatePostRequest{Text: "With image"})
	require.NoError(t, err)
	require.Equal(t, "/profile/leo/", resp.RedirectURL)
	s.AssertNumberOfCalls(t, "Upload", 1)

	posts, err := repository.NewPostRepository().GetList(ctx, repository.PostFilter{}, 0, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "/media/posts/small.png", posts[0].Image)

	var file entity.File
	require.NoError(t, xcontext.DB(ctx).Take(&file, "url = ?", "/media/posts/small.png").Error)
	require.Equal(t, testutil.User1.ID, file.CreatedBy)
}

func Test_postDomain_Create_InvalidImage(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	req := testutil.NewMultipartRequest("/create/", map[string]string{"text": "With image"},
		"image", "note.txt", []byte("this is not an image"))
	ctx = xcontext.WithHTTPRequest(ctx, req)

	s := &mocks.Storage{}
	domain := newTestPostDomain(s)
	resp, err := domain.Create(ctx, &model.CreatePostRequest{Text: "With image"})
	require.NoError(t, err)
	require.True(t, resp.Errors.Has("image"))
	s.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	require.Equal(t, int64(1), countPosts(t, ctx))
}

func Test_postDomain_Edit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestPostDomain(nil)

	ownerCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	otherCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	form, err := domain.EditForm(ownerCtx, &model.EditPostFormRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, form.IsEdit)
	require.Equal(t, testutil.Post1.Text, form.Text)
	require.Equal(t, testutil.Group1.ID, form.Group)

	form, err = domain.EditForm(otherCtx, &model.EditPostFormRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, "/posts/1/", form.RedirectURL)

	resp, err := domain.Edit(otherCtx, &model.EditPostRequest{PostID: testutil.Post1.ID, Text: "Hacked"})
	require.NoError(t, err)
	require.Equal(t, "/posts/1/", resp.RedirectURL)

	post, err := repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Text, post.Text)

	resp, err = domain.Edit(ownerCtx, &model.EditPostRequest{
		PostID: testutil.Post1.ID,
		Text:   "Edited",
		Group:  testutil.Group2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "/posts/1/", resp.RedirectURL)

	post, err = repository.NewPostRepository().GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, "Edited", post.Text)
	require.Equal(t, testutil.Group2.ID, post.GroupID.String)

	_, err = domain.Edit(ownerCtx, &model.EditPostRequest{PostID: 404, Text: "x"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}
