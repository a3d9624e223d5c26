package booking

import (
	"context"

	"studioreserve/internal/domain"
	"studioreserve/internal/repository"
)

type BookingRepository interface {
	CreateIfNoOverlap(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetOwnerForBooking(ctx context.Context, bookingID int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	ListVisible(ctx context.Context, q repository.BookingQuery) ([]domain.Booking, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender delivers best-effort status notifications; failures
// are logged by the caller and never affect the operation.
type NotificationSender interface {
	NotifyBookingStatusChanged(ctx context.Context, contact string, bookingID int64, newStatus domain.BookingStatus) error
}
