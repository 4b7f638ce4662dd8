package repository

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// PostFilter narrows a listing. Empty fields do not filter, so the zero value
// selects every post.
type PostFilter struct {
	GroupID  string
	AuthorID string

	// FollowerID keeps only posts whose author is followed by this user.
	FollowerID string
}

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	UpdateByID(ctx context.Context, id int64, data *entity.Post) error
	Count(ctx context.Context, filter PostFilter) (int64, error)
	GetList(ctx context.Context, filter PostFilter, offset, limit int) ([]entity.Post, error)
}

type postRepository struct{}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var record entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Group").
		Where("id=?", id).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id int64, data *entity.Post) error {
	updateMap := map[string]any{
		"text":     data.Text,
		"group_id": data.GroupID,
	}

	if data.Image != "" {
		updateMap["image"] = data.Image
	}

	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(updateMap).Error
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.applyFilter(ctx, xcontext.DB(ctx).Model(&entity.Post{}), filter).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) GetList(
	ctx context.Context, filter PostFilter, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := r.applyFilter(ctx, xcontext.DB(ctx).Model(&entity.Post{}), filter).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) applyFilter(ctx context.Context, tx *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.GroupID != "" {
		tx = tx.Where("group_id=?", filter.GroupID)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if filter.FollowerID != "" {
		tx = tx.Where("author_id IN (?)",
			xcontext.DB(ctx).
				Model(&entity.Follow{}).
				Select("author_id").
				Where("user_id=?", filter.FollowerID),
		)
	}

	return tx
}
