package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yatube-lab/backend/pkg/storage"
)

type Storage struct {
	mock.Mock
}

func (s *Storage) Upload(arg1 context.Context, arg2 *storage.UploadObject) (*storage.UploadResponse, error) {
	args := s.Called(arg1, arg2)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResponse), args.Error(1)
}
