package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"sage/infras/otel"
	"sage/infras/postgres"
	"sage/internal/domains/listing/model"
	gDto "sage/shared/dto"
	gRepo "sage/shared/repository"
)

type Listing interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Listing, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Listing, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Listing]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
