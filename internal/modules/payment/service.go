package payment

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"studioreserve/internal/domain"
)

type Service struct {
	payments PaymentRepository
	bookings bookingReader
	users    userReader
	gateway  Gateway
	notifs   NotificationSender
	log      zerolog.Logger

	now func() time.Time
}

func NewService(
	payments PaymentRepository,
	bookings bookingReader,
	users userReader,
	gateway Gateway,
	notifs NotificationSender,
	log zerolog.Logger,
) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		users:    users,
		gateway:  gateway,
		notifs:   notifs,
		log:      log,
		now:      time.Now,
	}
}

// Initiate creates a payment record for the caller's booking and asks the
// gateway for a redirect URL. The gateway's external reference is stored on
// the record so later callbacks can be correlated.
func (s *Service) Initiate(ctx context.Context, actorID int64, req InitiateRequest) (*InitiateResponse, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.PhotographerID != actorID {
		return nil, ErrForbidden
	}
	if b.PaymentStatus != domain.PaymentPending {
		return nil, ErrInvalidStatus
	}

	// One active record per booking: a failed attempt is terminal and may
	// be retried, an in-flight one may not be duplicated.
	pending, err := s.payments.HasPending(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrInProgress
	}

	p := &domain.Payment{
		BookingID: b.ID,
		Amount:    b.TotalPrice,
		Gateway:   s.gateway.Name(),
		Status:    domain.PaymentPending,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	gw, err := s.gateway.CreatePayment(ctx, b.ID, b.TotalPrice)
	if err != nil {
		return nil, err
	}
	if err := s.payments.SetExternalRef(ctx, p.ID, gw.ExternalRef); err != nil {
		return nil, err
	}

	return &InitiateResponse{PaymentID: p.ID, PaymentURL: gw.PaymentURL}, nil
}

// HandleCallback reconciles a gateway outcome against local state exactly
// once. Replays of a settled reference are acknowledged without touching
// the booking or re-notifying. A failed outcome finalizes only the payment
// record; the booking stays pending payment so initiation can be retried.
func (s *Service) HandleCallback(ctx context.Context, v VerificationResult) (*CallbackResult, error) {
	p, changed, err := s.payments.Settle(ctx, v.ExternalRef, v.Success, s.now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !changed {
		s.log.Info().Str("external_ref", v.ExternalRef).
			Msg("replayed payment callback, record already settled")
		return &CallbackResult{
			BookingID: p.BookingID,
			Paid:      p.Status == domain.PaymentPaid,
			Replayed:  true,
		}, nil
	}

	if !v.Success {
		s.log.Info().Str("external_ref", v.ExternalRef).Str("detail", v.ErrorDetail).
			Int64("booking_id", p.BookingID).
			Msg("payment failed at gateway")
		return &CallbackResult{BookingID: p.BookingID, Paid: false}, nil
	}

	s.notifyPaid(ctx, p.BookingID)

	return &CallbackResult{BookingID: p.BookingID, Paid: true}, nil
}

func (s *Service) notifyPaid(ctx context.Context, bookingID int64) {
	if s.notifs == nil {
		return
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		s.log.Error().Err(err).Int64("booking_id", bookingID).
			Msg("cannot load booking for payment notification")
		return
	}
	u, err := s.users.GetByID(ctx, b.PhotographerID)
	if err != nil || u.Phone == "" {
		s.log.Warn().Int64("booking_id", bookingID).
			Msg("skipping payment notification: photographer contact unavailable")
		return
	}

	if err := s.notifs.NotifyPaymentSucceeded(ctx, u.Phone, bookingID); err != nil {
		s.log.Error().Err(err).Int64("booking_id", bookingID).
			Msg("failed to send payment success notification")
	}
}
