package ledgerRepo

import (
	"context"
	"errors"

	"advisorly/models"
)

// ErrNotFound is returned when no booking exists for the given code.
var ErrNotFound = errors.New("booking not found")

// Repository is the persistence boundary of the booking ledger. Records are
// never physically deleted: cancellation updates the status in place.
type Repository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	Get(ctx context.Context, code string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	// ActiveByDate returns non-cancelled, non-waitlisted bookings for a day.
	ActiveByDate(ctx context.Context, date string) ([]models.Booking, error)
	// AllCodes returns every code ever issued, tombstoned included.
	AllCodes(ctx context.Context) (map[string]struct{}, error)
}
