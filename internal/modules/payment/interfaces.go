package payment

import (
	"context"
	"time"

	"studioreserve/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	SetExternalRef(ctx context.Context, id int64, ref string) error
	HasPending(ctx context.Context, bookingID int64) (bool, error)
	Settle(ctx context.Context, externalRef string, success bool, settledAt time.Time) (*domain.Payment, bool, error)
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender delivers the payment-success notice; best-effort,
// failures never fail the reconciliation.
type NotificationSender interface {
	NotifyPaymentSucceeded(ctx context.Context, contact string, bookingID int64) error
}
