package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sage/infras/otel"
	"sage/infras/postgres"
	"sage/internal/domains/review/model"
	gDto "sage/shared/dto"
	gRepo "sage/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
