package domain

import (
	"context"
	"strings"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) CommentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create always sends the viewer back to the post. An empty comment is
// dropped without any message.
func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get post", "post")
	}

	resp := &model.CreateCommentResponse{Redirect: model.RedirectTo(postURL(post.ID))}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return resp, nil
	}

	comment := &entity.Comment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		Text:          text,
		PostID:        post.ID,
		AuthorID:      xcontext.RequestUserID(ctx),
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}
