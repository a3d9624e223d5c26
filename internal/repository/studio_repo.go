package repository

import (
	"context"

	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

func (r *StudioRepository) Create(ctx context.Context, s *domain.Studio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StudioRepository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	var s domain.Studio
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudioRepository) List(ctx context.Context) ([]domain.Studio, error) {
	var out []domain.Studio
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StudioRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error) {
	var out []domain.Studio
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListIDsByOwner returns the ids of every studio the user owns, for
// scoping equipment queries.
func (r *StudioRepository) ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Studio{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
