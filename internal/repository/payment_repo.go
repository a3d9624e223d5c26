package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) SetExternalRef(ctx context.Context, id int64, ref string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Update("external_ref", ref).Error
}

// HasPending reports whether the booking already has a payment record that
// is not terminal yet. At most one such record may exist at a time.
func (r *PaymentRepository) HasPending(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("booking_id = ? AND status = ?", bookingID, domain.PaymentPending).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Settle finalizes the payment record identified by the gateway reference.
// The record moves PENDING -> PAID/FAILED at most once: if it is already
// terminal, nothing is written and changed is false, which is how replayed
// callbacks become no-ops. On success the booking's payment status flips to
// paid in the same transaction; on failure the booking stays pending so the
// photographer can retry initiation.
func (r *PaymentRepository) Settle(
	ctx context.Context,
	externalRef string,
	success bool,
	settledAt time.Time,
) (*domain.Payment, bool, error) {
	var p domain.Payment
	changed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("external_ref = ?", externalRef).First(&p).Error; err != nil {
			return err
		}
		if p.Status != domain.PaymentPending {
			return nil
		}

		target := domain.PaymentFailed
		if success {
			target = domain.PaymentPaid
		}

		res := tx.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", p.ID, domain.PaymentPending).
			Updates(map[string]interface{}{
				"status":     target,
				"settled_at": settledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// settled by a concurrent callback between read and write
			return nil
		}

		if success {
			err := tx.Model(&domain.Booking{}).
				Where("id = ?", p.BookingID).
				Update("payment_status", domain.PaymentPaid).Error
			if err != nil {
				return err
			}
		}

		p.Status = target
		p.SettledAt = &settledAt
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &p, changed, nil
}
