package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

// errNoTransition aborts the scan transaction without reporting a storage
// failure; callers see it as changed == false.
var errNoTransition = errors.New("equipment status unchanged")

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, item *domain.EquipmentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.EquipmentItem, error) {
	var item domain.EquipmentItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *EquipmentRepository) GetByScanCode(ctx context.Context, code string) (*domain.EquipmentItem, error) {
	var item domain.EquipmentItem
	err := r.db.WithContext(ctx).Where("scan_code = ?", code).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *EquipmentRepository) List(ctx context.Context, studioIDs []int64) ([]domain.EquipmentItem, error) {
	tx := r.db.WithContext(ctx).Model(&domain.EquipmentItem{})
	if studioIDs != nil {
		tx = tx.Where("studio_id IN ?", studioIDs)
	}
	var out []domain.EquipmentItem
	if err := tx.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ScanTransition moves an item between custody states and appends the audit
// log entry in the same transaction. The status update is guarded by the
// expected current state, so a concurrent scan in the same direction leaves
// RowsAffected at zero and the whole transaction becomes a no-op reported
// as changed == false; no log entry is written in that case.
func (r *EquipmentRepository) ScanTransition(
	ctx context.Context,
	itemID int64,
	from, to domain.EquipmentStatus,
	entry *domain.EquipmentLog,
) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.EquipmentItem{}).
			Where("id = ? AND status = ?", itemID, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNoTransition
		}
		return tx.Create(entry).Error
	})
	if errors.Is(err, errNoTransition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *EquipmentRepository) ListLogs(ctx context.Context, equipmentID int64) ([]domain.EquipmentLog, error) {
	var out []domain.EquipmentLog
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("timestamp, id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
