package equipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

type Service struct {
	items   EquipmentRepository
	studios StudioRepository

	now func() time.Time
}

func NewService(items EquipmentRepository, studios StudioRepository) *Service {
	return &Service{
		items:   items,
		studios: studios,
		now:     time.Now,
	}
}

// Create registers a new item for a studio the actor owns (or any studio
// for admins). The scan code is assigned here and never changes.
func (s *Service) Create(ctx context.Context, actorID int64, role domain.UserRole, req CreateEquipmentRequest) (*domain.EquipmentItem, error) {
	studio, err := s.studios.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	if role != domain.RoleAdmin && studio.OwnerID != actorID {
		return nil, ErrForbidden
	}

	item := &domain.EquipmentItem{
		StudioID:     studio.ID,
		Name:         strings.TrimSpace(req.Name),
		Brand:        strings.TrimSpace(req.Brand),
		Category:     strings.TrimSpace(req.Category),
		Condition:    strings.TrimSpace(req.Condition),
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		RentalPrice:  req.RentalPrice,
		ScanCode:     uuid.NewString(),
		Status:       domain.EquipmentAvailable,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// List is role-scoped: admins see everything, owners their own studios'
// inventory, photographers nothing.
func (s *Service) List(ctx context.Context, actorID int64, role domain.UserRole, studioID *int64) ([]domain.EquipmentItem, error) {
	switch role {
	case domain.RoleAdmin:
		if studioID != nil {
			return s.items.List(ctx, []int64{*studioID})
		}
		return s.items.List(ctx, nil)

	case domain.RoleStudioOwner:
		ownedIDs, err := s.studios.ListIDsByOwner(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if len(ownedIDs) == 0 {
			return []domain.EquipmentItem{}, nil
		}
		if studioID != nil {
			for _, id := range ownedIDs {
				if id == *studioID {
					return s.items.List(ctx, []int64{*studioID})
				}
			}
			return []domain.EquipmentItem{}, nil
		}
		return s.items.List(ctx, ownedIDs)

	default:
		return []domain.EquipmentItem{}, nil
	}
}

// Scan moves an item through the custody machine: scan_out takes an
// available item out, scan_in returns a rented one. The status change and
// its audit log entry commit together or not at all.
func (s *Service) Scan(ctx context.Context, actorID int64, role domain.UserRole, req ScanRequest) (*domain.EquipmentItem, *domain.EquipmentLog, error) {
	item, err := s.items.GetByScanCode(ctx, strings.TrimSpace(req.ScanCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if err := s.authorize(ctx, actorID, role, item.StudioID); err != nil {
		return nil, nil, err
	}

	var from, to domain.EquipmentStatus
	switch domain.EquipmentAction(req.Action) {
	case domain.ActionScanOut:
		from, to = domain.EquipmentAvailable, domain.EquipmentRented
	case domain.ActionScanIn:
		from, to = domain.EquipmentRented, domain.EquipmentAvailable
	default:
		return nil, nil, ErrInvalidStatus
	}

	entry := &domain.EquipmentLog{
		EquipmentID: item.ID,
		UserID:      actorID,
		Action:      domain.EquipmentAction(req.Action),
		Timestamp:   s.now().UTC(),
		Notes:       strings.TrimSpace(req.Notes),
	}

	changed, err := s.items.ScanTransition(ctx, item.ID, from, to, entry)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return nil, nil, ErrInvalidStatus
	}

	item.Status = to
	return item, entry, nil
}

// Logs returns the custody audit trail for an item the actor may manage.
func (s *Service) Logs(ctx context.Context, actorID int64, role domain.UserRole, equipmentID int64) ([]domain.EquipmentLog, error) {
	item, err := s.items.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, actorID, role, item.StudioID); err != nil {
		return nil, err
	}
	return s.items.ListLogs(ctx, equipmentID)
}

func (s *Service) authorize(ctx context.Context, actorID int64, role domain.UserRole, studioID int64) error {
	if role == domain.RoleAdmin {
		return nil
	}
	if role != domain.RoleStudioOwner {
		return ErrForbidden
	}
	studio, err := s.studios.GetByID(ctx, studioID)
	if err != nil {
		return err
	}
	if studio.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}
