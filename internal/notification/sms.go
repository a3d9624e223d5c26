// Package notification holds outbound notification senders. The SMS sender
// is a stub that logs instead of calling a provider; swap it for a real
// gateway client without touching the services.
package notification

import (
	"context"

	"github.com/rs/zerolog"

	"studioreserve/internal/domain"
)

type SMSSender struct {
	log zerolog.Logger
}

func NewSMSSender(log zerolog.Logger) *SMSSender {
	return &SMSSender{log: log.With().Str("component", "sms").Logger()}
}

func (s *SMSSender) NotifyBookingStatusChanged(ctx context.Context, contact string, bookingID int64, newStatus domain.BookingStatus) error {
	s.log.Info().
		Str("to", contact).
		Int64("booking_id", bookingID).
		Str("status", string(newStatus)).
		Msg("booking status notification")
	return nil
}

func (s *SMSSender) NotifyPaymentSucceeded(ctx context.Context, contact string, bookingID int64) error {
	s.log.Info().
		Str("to", contact).
		Int64("booking_id", bookingID).
		Msg("payment success notification")
	return nil
}
