package domain

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type FollowDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
}

type followDomain struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) FollowDomain {
	return &followDomain{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow is idempotent. Following oneself is silently ignored.
func (d *followDomain) Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error) {
	author, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get author", "author")
	}

	resp := &model.FollowResponse{Redirect: model.RedirectTo(profileURL(author.Username))}

	userID := xcontext.RequestUserID(ctx)
	if userID == author.ID {
		return resp, nil
	}

	err = d.followRepo.Create(ctx, &entity.Follow{UserID: userID, AuthorID: author.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func (d *followDomain) Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error) {
	author, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get author", "author")
	}

	err = d.followRepo.Delete(ctx, xcontext.RequestUserID(ctx), author.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{Redirect: model.RedirectTo(profileURL(author.Username))}, nil
}

func (d *followDomain) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	ok, err := d.followRepo.Exists(ctx, userID, authorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check follow: %v", err)
		return false, errorx.Unknown
	}

	return ok, nil
}
