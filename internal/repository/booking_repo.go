package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

// ErrOverlap is returned by CreateIfNoOverlap when a live booking already
// occupies part of the requested range.
var ErrOverlap = errors.New("booking range overlaps an existing booking")

// liveStatuses are the booking states that block a room's calendar.
var liveStatuses = []domain.BookingStatus{domain.BookingPending, domain.BookingAccepted}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateIfNoOverlap runs the conflict check and the insert in one
// transaction. The overlap predicate matches half-open ranges: adjacent
// bookings (end == start) do not conflict.
func (r *BookingRepository) CreateIfNoOverlap(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&domain.Booking{}).
			Where("room_id = ? AND status IN ?", b.RoomID, liveStatuses).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetOwnerForBooking resolves the user id of the studio owner behind a
// booking's room.
func (r *BookingRepository) GetOwnerForBooking(ctx context.Context, bookingID int64) (int64, error) {
	var ownerID int64
	err := r.db.WithContext(ctx).Raw(`
SELECT s.owner_id
FROM bookings b
JOIN studios s ON s.id = b.studio_id
WHERE b.id = ?
`, bookingID).Scan(&ownerID).Error
	if err != nil {
		return 0, err
	}
	if ownerID == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ownerID, nil
}

// UpdateStatus moves the booking from the status the caller observed to the
// target. The guard on the current status makes the transition atomic: if a
// concurrent request already moved the booking, RowsAffected stays zero and
// changed is false, so a settled lifecycle state can never be overwritten.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// BookingQuery scopes a listing to what the requester may see, with
// optional status and date filters.
type BookingQuery struct {
	Role   domain.UserRole
	UserID int64
	Status *domain.BookingStatus
	From   *time.Time
	To     *time.Time
}

func (r *BookingRepository) ListVisible(ctx context.Context, q BookingQuery) ([]domain.Booking, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Booking{})

	switch q.Role {
	case domain.RoleAdmin:
		// no visibility filter
	case domain.RoleStudioOwner:
		tx = tx.Where("studio_id IN (?)",
			r.db.Model(&domain.Studio{}).Select("id").Where("owner_id = ?", q.UserID))
	default:
		tx = tx.Where("photographer_id = ?", q.UserID)
	}

	if q.Status != nil {
		tx = tx.Where("status = ?", *q.Status)
	}
	if q.From != nil {
		tx = tx.Where("start_time >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("end_time <= ?", *q.To)
	}

	var out []domain.Booking
	if err := tx.Order("start_time").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
