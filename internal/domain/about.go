package domain

import (
	"context"

	"github.com/yatube-lab/backend/internal/model"
)

type AboutDomain interface {
	Author(context.Context, *model.AboutRequest) (*model.AboutResponse, error)
	Tech(context.Context, *model.AboutRequest) (*model.AboutResponse, error)
}

type aboutDomain struct{}

func NewAboutDomain() AboutDomain {
	return &aboutDomain{}
}

func (d *aboutDomain) Author(context.Context, *model.AboutRequest) (*model.AboutResponse, error) {
	return &model.AboutResponse{Page: "author"}, nil
}

func (d *aboutDomain) Tech(context.Context, *model.AboutRequest) (*model.AboutResponse, error) {
	return &model.AboutResponse{Page: "tech"}, nil
}
