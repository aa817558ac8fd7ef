package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sage/infras/otel"
	"sage/infras/postgres"
	"sage/internal/domains/admin/model"
	gDto "sage/shared/dto"
	gRepo "sage/shared/repository"
)

type Admin interface {
	Insert(ctx context.Context, model model.Admin) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Admin, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Admin, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Admin]
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Admin](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
