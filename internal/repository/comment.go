package repository

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetListByPostID(ctx context.Context, postID int64) ([]entity.Comment, error)
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetListByPostID returns comments of the post, oldest first.
func (r *commentRepository) GetListByPostID(ctx context.Context, postID int64) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("post_id=?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
