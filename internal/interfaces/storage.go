package interfaces

import (
	"context"

	"github.com/carteiralab/carteira/internal/models"
)

// PositionStore persists user positions keyed by (user, ticker).
type PositionStore interface {
	UpsertPosition(ctx context.Context, position *models.Position) error
	DeletePosition(ctx context.Context, userID, ticker string) error
	GetPosition(ctx context.Context, userID, ticker string) (*models.Position, error)
	ListPositions(ctx context.Context, userID string) ([]models.Position, error)
}

// TargetStore persists allocation-target tables keyed by user. Saves are
// wholesale: the new table replaces the old one entirely.
type TargetStore interface {
	SaveTargets(ctx context.Context, userID string, targets models.AllocationTargets) error
	GetTargets(ctx context.Context, userID string) (models.AllocationTargets, error)
}

// Store aggregates the persistence surface of the application.
type Store interface {
	PositionStore
	TargetStore
	Close() error
}
