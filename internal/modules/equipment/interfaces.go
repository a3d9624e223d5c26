package equipment

import (
	"context"

	"studioreserve/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, item *domain.EquipmentItem) error
	GetByID(ctx context.Context, id int64) (*domain.EquipmentItem, error)
	GetByScanCode(ctx context.Context, code string) (*domain.EquipmentItem, error)
	List(ctx context.Context, studioIDs []int64) ([]domain.EquipmentItem, error)
	ScanTransition(ctx context.Context, itemID int64, from, to domain.EquipmentStatus, entry *domain.EquipmentLog) (bool, error)
	ListLogs(ctx context.Context, equipmentID int64) ([]domain.EquipmentLog, error)
}

type StudioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Studio, error)
	ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
}
