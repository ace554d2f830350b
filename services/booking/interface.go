package booking

import (
	"context"
	"sync"

	ledgerRepo "advisorly/database/repository/ledger"
	"advisorly/models"
)

// LedgerService is the authoritative record of bookings: unique code issuance,
// interval-conflict detection, and cancellation-as-tombstone lifecycle.
type LedgerService interface {
	CreateBooking(ctx context.Context, topic string, slot models.Slot) (*models.Booking, error)
	CreateWaitlistBooking(ctx context.Context, topic string, slot models.Slot) (*models.Booking, error)
	GetBooking(ctx context.Context, code string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, code string, slot models.Slot) (*models.Booking, error)
	// CancelBooking is a logical cancel. It returns false when the code is
	// unknown or already cancelled; neither is an error.
	CancelBooking(ctx context.Context, code string) (bool, error)
	CheckConflict(ctx context.Context, date string, start, end int, excludeCode string) (bool, []models.Booking, error)
	ActiveBookings(ctx context.Context, date string) ([]models.Booking, error)
}

// DefaultLedgerService implements LedgerService over a pluggable repository.
// The mutex makes check → generate → commit a critical section across
// sessions, keeping the one-active-booking-per-interval invariant under races.
type DefaultLedgerService struct {
	Repo ledgerRepo.Repository
	mu   sync.Mutex
}

func NewDefaultLedgerService(repo ledgerRepo.Repository) *DefaultLedgerService {
	return &DefaultLedgerService{Repo: repo}
}
