package repository

import (
	"context"
	"errors"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	// Create inserts the edge. An already existing edge is left untouched.
	Create(ctx context.Context, data *entity.Follow) error
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type followRepository struct{}

func NewFollowRepository() FollowRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "author_id"},
			},
			DoNothing: true,
		}).Create(data).Error
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND author_id=?", userID, authorID).
		Delete(&entity.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var record entity.Follow
	err := xcontext.DB(ctx).
		Where("user_id=? AND author_id=?", userID, authorID).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("author_id=?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
