package repository

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type FileRepository interface {
	Create(context.Context, *entity.File) error
	GetByID(context.Context, string) (*entity.File, error)
}

type fileRepository struct{}

func NewFileRepository() FileRepository {
	return &fileRepository{}
}

func (r *fileRepository) Create(ctx context.Context, e *entity.File) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*entity.File, error) {
	var record entity.File
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}
