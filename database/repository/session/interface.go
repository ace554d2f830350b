package sessionRepo

import (
	"context"
	"errors"

	"advisorly/models"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Store owns dialog sessions exclusively. Eviction is a store concern: the
// Redis backend applies a TTL, the in-memory backend keeps sessions for the
// process lifetime.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
