package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/paginator"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const postImagePrefix = "posts"

type PostDomain interface {
	// List returns one page of the posts in scope, newest first.
	List(ctx context.Context, scope model.Scope, page string) (*model.PostPage, error)

	Index(context.Context, *model.IndexRequest) (*model.IndexResponse, error)
	GroupList(context.Context, *model.GroupListRequest) (*model.GroupListResponse, error)
	Profile(context.Context, *model.ProfileRequest) (*model.ProfileResponse, error)
	FollowIndex(context.Context, *model.FollowIndexRequest) (*model.FollowIndexResponse, error)
	Detail(context.Context, *model.PostDetailRequest) (*model.PostDetailResponse, error)
	CreateForm(context.Context, *model.CreatePostFormRequest) (*model.PostFormResponse, error)
	Create(context.Context, *model.CreatePostRequest) (*model.PostFormResponse, error)
	EditForm(context.Context, *model.EditPostFormRequest) (*model.PostFormResponse, error)
	Edit(context.Context, *model.EditPostRequest) (*model.PostFormResponse, error)
}

type postDomain struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	fileRepo    repository.FileRepository
	storage     storage.Storage

	followDomain FollowDomain
}

func NewPostDomain(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	fileRepo repository.FileRepository,
	storage storage.Storage,
	followDomain FollowDomain,
) PostDomain {
	return &postDomain{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		fileRepo:    fileRepo,
		storage:     storage,

		followDomain: followDomain,
	}
}

func (d *postDomain) List(ctx context.Context, scope model.Scope, page string) (*model.PostPage, error) {
	postPage, _, err := d.list(ctx, scope, page)
	return postPage, err
}

// scopeOwner holds the group or the author a scope was resolved to.
type scopeOwner struct {
	group  *entity.Group
	author *entity.User
}

func (d *postDomain) list(
	ctx context.Context, scope model.Scope, page string,
) (*model.PostPage, *scopeOwner, error) {
	owner := &scopeOwner{}
	filter := repository.PostFilter{}
	switch scope.Kind {
	case model.ScopeAll:
	case model.ScopeGroup:
		group, err := d.groupRepo.GetBySlug(ctx, scope.GroupSlug)
		if err != nil {
			return nil, nil, notFoundOrUnknown(ctx, err, "Cannot get group", "group")
		}
		filter.GroupID = group.ID
		owner.group = group

	case model.ScopeAuthor:
		author, err := d.userRepo.GetByUsername(ctx, scope.Username)
		if err != nil {
			return nil, nil, notFoundOrUnknown(ctx, err, "Cannot get author", "author")
		}
		filter.AuthorID = author.ID
		owner.author = author

	case model.ScopeFollowed:
		if scope.ViewerID == "" {
			return nil, nil, errorx.New(errorx.Unauthenticated, "You need to login before")
		}
		filter.FollowerID = scope.ViewerID

	default:
		return nil, nil, errorx.New(errorx.BadRequest, "Invalid scope")
	}

	postPage, err := d.listByFilter(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}

	return postPage, owner, nil
}

func (d *postDomain) listByFilter(
	ctx context.Context, filter repository.PostFilter, rawPage string,
) (*model.PostPage, error) {
	total, err := d.postRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	page := paginator.New(int(total), pageSize(ctx)).Page(paginator.ParseNumber(rawPage))

	posts := []model.Post{}
	if page.Limit > 0 {
		entities, err := d.postRepo.GetList(ctx, filter, page.Offset, page.Limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get list of posts: %v", err)
			return nil, errorx.Unknown
		}

		for i := range entities {
			posts = append(posts, model.ConvertPost(&entities[i]))
		}
	}

	return &model.PostPage{Posts: posts, Page: page}, nil
}

func (d *postDomain) Index(ctx context.Context, req *model.IndexRequest) (*model.IndexResponse, error) {
	postPage, err := d.List(ctx, model.Scope{Kind: model.ScopeAll}, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.IndexResponse{PostPage: *postPage}, nil
}

func (d *postDomain) GroupList(
	ctx context.Context, req *model.GroupListRequest,
) (*model.GroupListResponse, error) {
	postPage, owner, err := d.list(ctx, model.Scope{Kind: model.ScopeGroup, GroupSlug: req.Slug}, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.GroupListResponse{
		Group:    model.ConvertGroup(owner.group),
		PostPage: *postPage,
	}, nil
}

func (d *postDomain) Profile(ctx context.Context, req *model.ProfileRequest) (*model.ProfileResponse, error) {
	postPage, owner, err := d.list(ctx, model.Scope{Kind: model.ScopeAuthor, Username: req.Username}, req.Page)
	if err != nil {
		return nil, err
	}
	author := owner.author

	followers, err := d.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	following, err := d.followRepo.CountFollowing(ctx, author.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.ProfileResponse{
		Author:    model.ConvertUser(author),
		PostPage:  *postPage,
		Followers: followers,
		Following: following,
	}

	viewerID := xcontext.RequestUserID(ctx)
	if viewerID != "" && viewerID != author.ID {
		resp.CanFollow = true
		resp.IsFollowing, err = d.followDomain.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (d *postDomain) FollowIndex(
	ctx context.Context, req *model.FollowIndexRequest,
) (*model.FollowIndexResponse, error) {
	scope := model.Scope{Kind: model.ScopeFollowed, ViewerID: xcontext.RequestUserID(ctx)}
	postPage, err := d.List(ctx, scope, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.FollowIndexResponse{PostPage: *postPage}, nil
}

func (d *postDomain) Detail(ctx context.Context, req *model.PostDetailRequest) (*model.PostDetailResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get post", "post")
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.postRepo.Count(ctx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts of author: %v", err)
		return nil, errorx.Unknown
	}

	viewerID := xcontext.RequestUserID(ctx)
	resp := &model.PostDetailResponse{
		Post:            model.ConvertPost(post),
		Comments:        []model.Comment{},
		AuthorPostCount: count,
		IsAuthor:        viewerID != "" && viewerID == post.AuthorID,
		CanComment:      viewerID != "",
	}

	for i := range comments {
		resp.Comments = append(resp.Comments, model.ConvertComment(&comments[i]))
	}

	return resp, nil
}

func (d *postDomain) CreateForm(
	ctx context.Context, req *model.CreatePostFormRequest,
) (*model.PostFormResponse, error) {
	return d.newFormResponse(ctx, &model.PostFormResponse{})
}

func (d *postDomain) Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostFormResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	author, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get request user", "user")
	}

	form := &model.PostFormResponse{Text: req.Text, Group: req.Group, Errors: model.FormErrors{}}
	post := &entity.Post{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		AuthorID:      author.ID,
	}

	upload, err := d.validatePostForm(ctx, form, post)
	if err != nil {
		return nil, err
	}

	if len(form.Errors) > 0 {
		return d.newFormResponse(ctx, form)
	}

	if err := d.savePost(ctx, post, upload, d.postRepo.Create); err != nil {
		return nil, err
	}

	return &model.PostFormResponse{Redirect: model.RedirectTo(profileURL(author.Username))}, nil
}

func (d *postDomain) EditForm(
	ctx context.Context, req *model.EditPostFormRequest,
) (*model.PostFormResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get post", "post")
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return &model.PostFormResponse{Redirect: model.RedirectTo(postURL(post.ID))}, nil
	}

	return d.newFormResponse(ctx, &model.PostFormResponse{
		IsEdit: true,
		PostID: post.ID,
		Text:   post.Text,
		Group:  post.GroupID.String,
		Image:  post.Image,
	})
}

func (d *postDomain) Edit(ctx context.Context, req *model.EditPostRequest) (*model.PostFormResponse, error) {
	origin, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get post", "post")
	}

	if origin.AuthorID != xcontext.RequestUserID(ctx) {
		return &model.PostFormResponse{Redirect: model.RedirectTo(postURL(origin.ID))}, nil
	}

	form := &model.PostFormResponse{
		IsEdit: true,
		PostID: origin.ID,
		Text:   req.Text,
		Group:  req.Group,
		Image:  origin.Image,
		Errors: model.FormErrors{},
	}
	post := &entity.Post{SnowFlakeBase: entity.SnowFlakeBase{ID: origin.ID}, AuthorID: origin.AuthorID}

	upload, err := d.validatePostForm(ctx, form, post)
	if err != nil {
		return nil, err
	}

	if len(form.Errors) > 0 {
		return d.newFormResponse(ctx, form)
	}

	update := func(ctx context.Context, post *entity.Post) error {
		return d.postRepo.UpdateByID(ctx, post.ID, post)
	}

	if err := d.savePost(ctx, post, upload, update); err != nil {
		return nil, err
	}

	return &model.PostFormResponse{Redirect: model.RedirectTo(postURL(origin.ID))}, nil
}

// validatePostForm fills post with the validated form values. Validation
// failures are reported through form.Errors, the returned error is reserved
// for unexpected failures.
func (d *postDomain) validatePostForm(
	ctx context.Context, form *model.PostFormResponse, post *entity.Post,
) (*storage.UploadObject, error) {
	text, msg := checkPostText(form.Text)
	if msg != "" {
		form.Errors.Add("text", msg)
	}
	post.Text = text

	if form.Group != "" {
		group, err := d.groupRepo.GetByID(ctx, form.Group)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
				return nil, errorx.Unknown
			}

			form.Errors.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		} else {
			post.GroupID = sql.NullString{Valid: true, String: group.ID}
		}
	}

	upload, err := common.ProcessImage(ctx, "image", postImagePrefix)
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) && errx.Code == errorx.BadRequest {
			form.Errors.Add("image", errx.Message)
			return nil, nil
		}

		return nil, err
	}

	return upload, nil
}

// savePost uploads the image if any, then writes the post and the file record
// in a single transaction.
func (d *postDomain) savePost(
	ctx context.Context,
	post *entity.Post,
	upload *storage.UploadObject,
	write func(context.Context, *entity.Post) error,
) error {
	var uploaded *storage.UploadResponse
	if upload != nil {
		var err error
		uploaded, err = d.storage.Upload(ctx, upload)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
			return errorx.Unknown
		}

		post.Image = uploaded.Url
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if uploaded != nil {
		err := d.fileRepo.Create(ctx, &entity.File{
			Base:      entity.Base{ID: uuid.NewString()},
			Mime:      upload.Mime,
			Name:      uploaded.FileName,
			CreatedBy: post.AuthorID,
			Url:       uploaded.Url,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create file record: %v", err)
			return errorx.Unknown
		}
	}

	if err := write(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save post: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *postDomain) newFormResponse(
	ctx context.Context, form *model.PostFormResponse,
) (*model.PostFormResponse, error) {
	groups, err := d.groupRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of groups: %v", err)
		return nil, errorx.Unknown
	}

	form.Groups = make([]model.Group, 0, len(groups))
	for i := range groups {
		form.Groups = append(form.Groups, model.ConvertGroup(&groups[i]))
	}

	if form.Errors == nil {
		form.Errors = model.FormErrors{}
	}

	return form, nil
}
