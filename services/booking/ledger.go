package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	ledgerRepo "advisorly/database/repository/ledger"
	"advisorly/models"
	"advisorly/utils"

	"go.uber.org/zap"
)

// CreateBooking issues a fresh code and commits the slot. If the interval
// turns out to be taken despite the caller's earlier availability check, the
// record is forced onto the waitlist instead of failing — the last line of
// defense when lock discipline upstream was imperfect.
func (s *DefaultLedgerService) CreateBooking(ctx context.Context, topic string, slot models.Slot) (*models.Booking, error) {
	return s.create(ctx, topic, slot, false)
}

// CreateWaitlistBooking commits a non-blocking waitlist entry for a slot the
// caller already knows is taken.
func (s *DefaultLedgerService) CreateWaitlistBooking(ctx context.Context, topic string, slot models.Slot) (*models.Booking, error) {
	return s.create(ctx, topic, slot, true)
}

func (s *DefaultLedgerService) create(ctx context.Context, topic string, slot models.Slot, waitlist bool) (*models.Booking, error) {
	if topic == "" {
		return nil, NewValidationError("cannot commit a booking without a topic")
	}
	if slot.Date == "" || slot.End <= slot.Start {
		return nil, NewValidationError("cannot commit a booking without a selected slot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	codes, err := s.Repo.AllCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load issued codes: %w", err)
	}
	code, err := GenerateBookingCode(codes)
	if err != nil {
		return nil, err
	}

	if !waitlist {
		conflict, _, err := s.conflictLocked(ctx, slot.Date, slot.Start, slot.End, "")
		if err != nil {
			return nil, err
		}
		if conflict {
			utils.GetLogger().Warn("interval already taken at commit, forcing waitlist",
				zap.String("code", code), zap.String("date", slot.Date),
				zap.Int("start", slot.Start), zap.Int("end", slot.End))
			waitlist = true
		}
	}

	now := time.Now().UTC()
	record := models.Booking{
		Code:       code,
		Topic:      topic,
		Date:       slot.Date,
		Start:      slot.Start,
		End:        slot.End,
		Status:     models.BookingStatusCreated,
		IsWaitlist: waitlist,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Insert(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to persist booking %s: %w", code, err)
	}
	return &record, nil
}

func (s *DefaultLedgerService) GetBooking(ctx context.Context, code string) (*models.Booking, error) {
	booking, err := s.Repo.Get(ctx, code)
	if errors.Is(err, ledgerRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("no booking with code %s", code))
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// RescheduleBooking moves an existing booking to a new slot. The code never
// changes; status becomes "rescheduled" and UpdatedAt is bumped.
func (s *DefaultLedgerService) RescheduleBooking(ctx context.Context, code string, slot models.Slot) (*models.Booking, error) {
	if slot.Date == "" || slot.End <= slot.Start {
		return nil, NewValidationError("cannot reschedule without a selected slot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.Repo.Get(ctx, code)
	if errors.Is(err, ledgerRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("no booking with code %s", code))
	}
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s is cancelled", code))
	}

	conflict, _, err := s.conflictLocked(ctx, slot.Date, slot.Start, slot.End, code)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, NewConflictError(fmt.Sprintf("interval on %s is no longer free", slot.Date))
	}

	booking.Date = slot.Date
	booking.Start = slot.Start
	booking.End = slot.End
	booking.Status = models.BookingStatusRescheduled
	booking.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist reschedule of %s: %w", code, err)
	}
	return booking, nil
}

// CancelBooking tombstones the record: status becomes cancelled, the interval
// is released, the record is retained for audit. Cancelling an unknown or
// already-cancelled code returns false without error.
func (s *DefaultLedgerService) CancelBooking(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.Repo.Get(ctx, code)
	if errors.Is(err, ledgerRepo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return false, nil
	}

	booking.Status = models.BookingStatusCancelled
	booking.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, booking); err != nil {
		return false, fmt.Errorf("failed to persist cancellation of %s: %w", code, err)
	}
	return true, nil
}

// CheckConflict reports whether [start, end) on date collides with any active
// booking, ignoring excludeCode (a booking never conflicts with itself during
// reschedule).
func (s *DefaultLedgerService) CheckConflict(ctx context.Context, date string, start, end int, excludeCode string) (bool, []models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflictLocked(ctx, date, start, end, excludeCode)
}

func (s *DefaultLedgerService) ActiveBookings(ctx context.Context, date string) ([]models.Booking, error) {
	return s.Repo.ActiveByDate(ctx, date)
}

func (s *DefaultLedgerService) conflictLocked(ctx context.Context, date string, start, end int, excludeCode string) (bool, []models.Booking, error) {
	active, err := s.Repo.ActiveByDate(ctx, date)
	if err != nil {
		return false, nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	var overlapping []models.Booking
	for _, b := range active {
		if b.Code == excludeCode {
			continue
		}
		if b.Start < end && b.End > start {
			overlapping = append(overlapping, b)
		}
	}
	return len(overlapping) > 0, overlapping, nil
}
