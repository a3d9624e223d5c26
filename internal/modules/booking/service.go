package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"studioreserve/internal/domain"
	"studioreserve/internal/repository"
)

// startGracePeriod tolerates client/server clock skew: a booking may start
// up to this long before "now" without being treated as stale.
const startGracePeriod = 10 * time.Minute

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	users    UserRepository
	notifs   NotificationSender
	log      zerolog.Logger

	// now is swapped out in tests.
	now func() time.Time

	// locks serializes admissions per room. The transactional overlap check
	// alone is not race-free on every store, and the Postgres exclusion
	// constraint only backstops one of them.
	locks roomLocks
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	users UserRepository,
	notifs NotificationSender,
	log zerolog.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		notifs:   notifs,
		log:      log,
		now:      time.Now,
	}
}

// CreateBooking admits a booking request against the room's calendar. The
// conflict check and insert are atomic per room; exactly one of two
// concurrent overlapping requests succeeds.
func (s *Service) CreateBooking(ctx context.Context, photographerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidRange
	}
	if req.StartTime.Before(s.now().Add(-startGracePeriod)) {
		return nil, ErrStartTooFarInPast
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}

	b := &domain.Booking{
		RoomID:         room.ID,
		StudioID:       room.StudioID,
		PhotographerID: photographerID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		EquipmentIDs:   normalizeEquipmentIDs(req.EquipmentIDs),
		TotalPrice:     HourlyTotal(room.HourlyPrice, req.StartTime, req.EndTime),
		Status:         domain.BookingPending,
		PaymentStatus:  domain.PaymentPending,
	}

	unlock := s.locks.lock(room.ID)
	defer unlock()

	if err := s.bookings.CreateIfNoOverlap(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrConflict
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_overbooking" {
			return nil, ErrConflict
		}
		return nil, err
	}

	return b, nil
}

// ChangeStatus applies one transition from the lifecycle table, subject to
// the actor's entitlement, and notifies the counterparty best-effort.
func (s *Service) ChangeStatus(
	ctx context.Context,
	bookingID, actorID int64,
	role domain.UserRole,
	target domain.BookingStatus,
) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ownerID, err := s.bookings.GetOwnerForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	sc := StatusContext{
		Current:        b.Status,
		PhotographerID: b.PhotographerID,
		StudioOwnerID:  ownerID,
	}
	switch EvaluateStatusChange(role, actorID, sc, target) {
	case DecisionForbidden:
		return nil, ErrForbidden
	case DecisionInvalidTransition:
		return nil, ErrInvalidTransition
	}

	// Conditional on the status we evaluated against: a concurrent change
	// between the read and the write leaves the row untouched, so a
	// transition out of a state that no longer holds cannot be applied.
	changed, err := s.bookings.UpdateStatus(ctx, bookingID, b.Status, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidTransition
	}
	b.Status = target

	s.notifyStatusChanged(ctx, b, actorID, ownerID)

	return b, nil
}

// notifyStatusChanged tells whichever party did not act. Delivery is
// best-effort; failures are logged and swallowed.
func (s *Service) notifyStatusChanged(ctx context.Context, b *domain.Booking, actorID, ownerID int64) {
	if s.notifs == nil {
		return
	}

	recipientID := b.PhotographerID
	if actorID == b.PhotographerID {
		recipientID = ownerID
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil || recipient.Phone == "" {
		s.log.Warn().Int64("booking_id", b.ID).Int64("user_id", recipientID).
			Msg("skipping status notification: no contact for recipient")
		return
	}

	if err := s.notifs.NotifyBookingStatusChanged(ctx, recipient.Phone, b.ID, b.Status); err != nil {
		s.log.Error().Err(err).Int64("booking_id", b.ID).
			Msg("failed to send booking status notification")
	}
}

// GetBooking returns the booking if the actor may see it: the photographer
// who made it, the owner of its studio, or an admin.
func (s *Service) GetBooking(ctx context.Context, bookingID, actorID int64, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role == domain.RoleAdmin || b.PhotographerID == actorID {
		return b, nil
	}
	if role == domain.RoleStudioOwner {
		ownerID, err := s.bookings.GetOwnerForBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if ownerID == actorID {
			return b, nil
		}
	}
	return nil, ErrForbidden
}

func (s *Service) ListBookings(ctx context.Context, q repository.BookingQuery) ([]domain.Booking, error) {
	return s.bookings.ListVisible(ctx, q)
}

// normalizeEquipmentIDs deduplicates and sorts so equipment sets compare
// order-insensitively.
func normalizeEquipmentIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type roomLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func (l *roomLocks) lock(roomID int64) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[int64]*sync.Mutex)
	}
	rm, ok := l.m[roomID]
	if !ok {
		rm = &sync.Mutex{}
		l.m[roomID] = rm
	}
	l.mu.Unlock()

	rm.Lock()
	return rm.Unlock
}
