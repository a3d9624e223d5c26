package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

type Service struct {
	studios StudioRepository
	rooms   RoomRepository
}

func NewService(studios StudioRepository, rooms RoomRepository) *Service {
	return &Service{studios: studios, rooms: rooms}
}

func (s *Service) CreateStudio(ctx context.Context, ownerID int64, req CreateStudioRequest) (*domain.Studio, error) {
	studio := &domain.Studio{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
	}
	if err := s.studios.Create(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

func (s *Service) GetStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	studio, err := s.studios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	return studio, nil
}

func (s *Service) ListStudios(ctx context.Context) ([]domain.Studio, error) {
	return s.studios.List(ctx)
}

func (s *Service) ListOwnStudios(ctx context.Context, ownerID int64) ([]domain.Studio, error) {
	return s.studios.ListByOwner(ctx, ownerID)
}

// CreateRoom adds a room to one of the caller's studios. Admins may add
// rooms to any studio.
func (s *Service) CreateRoom(ctx context.Context, callerID int64, role string, studioID int64, req CreateRoomRequest) (*domain.Room, error) {
	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	if role != string(domain.RoleAdmin) && studio.OwnerID != callerID {
		return nil, ErrForbidden
	}

	room := &domain.Room{
		StudioID:    studio.ID,
		Name:        req.Name,
		Description: req.Description,
		HourlyPrice: req.HourlyPrice,
		DailyPrice:  req.DailyPrice,
		IsActive:    true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, studioID int64) ([]domain.Room, error) {
	if _, err := s.studios.GetByID(ctx, studioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	return s.rooms.ListByStudio(ctx, studioID)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}
