package catalog

import (
	"context"

	"studioreserve/internal/domain"
)

type StudioRepository interface {
	Create(ctx context.Context, s *domain.Studio) error
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	List(ctx context.Context) ([]domain.Studio, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByStudio(ctx context.Context, studioID int64) ([]domain.Room, error)
}
