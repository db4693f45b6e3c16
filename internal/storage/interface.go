package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/interviewdesk/internal/models"
)

// ErrNotFound is returned when no interview has the requested id.
var ErrNotFound = errors.New("interview not found")

// Provider is the persistence layer behind the reference backend. Dates are
// YYYY-MM-DD strings; ranges are inclusive.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Interviews
	ListByRange(ctx context.Context, start, end string) ([]models.Interview, error)
	Get(ctx context.Context, id int64) (models.Interview, error)
	Create(ctx context.Context, interview models.Interview) (models.Interview, error)
	Update(ctx context.Context, interview models.Interview) (models.Interview, error)
	Delete(ctx context.Context, id int64) error

	// Utils
	Describe() string
}
