package ledgerRepo

import (
	"context"
	"sync"

	"advisorly/models"
)

// MemoryRepository is the in-process ledger backend.
type MemoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bookings: make(map[string]models.Booking)}
}

func (r *MemoryRepository) Insert(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.Code] = *booking
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, code string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (r *MemoryRepository) Update(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.Code]; !ok {
		return ErrNotFound
	}
	r.bookings[booking.Code] = *booking
	return nil
}

func (r *MemoryRepository) ActiveByDate(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Active() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryRepository) AllCodes(ctx context.Context) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make(map[string]struct{}, len(r.bookings))
	for code := range r.bookings {
		codes[code] = struct{}{}
	}
	return codes, nil
}
