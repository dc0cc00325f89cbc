// Package positiondb implements the persistence layer using BadgerHold.
// Positions are keyed by (user, ticker); allocation-target tables by user.
package positiondb

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/carteiralab/carteira/internal/common"
	"github.com/carteiralab/carteira/internal/interfaces"
	"github.com/carteiralab/carteira/internal/models"
)

// Store implements interfaces.Store using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

var _ interfaces.Store = (*Store)(nil)

// NewStore opens (or creates) the database at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Position store opened")
	return &Store{db: db, logger: logger}, nil
}

// keySep is the composite key separator. A null byte cannot appear in a
// user ID or ticker, so keys never collide.
const keySep = "\x00"

func positionKey(userID, ticker string) string {
	return userID + keySep + ticker
}

// UpsertPosition creates or overwrites the position for (user, ticker).
func (s *Store) UpsertPosition(_ context.Context, position *models.Position) error {
	position.Ticker = models.NormalizeTicker(position.Ticker)
	if err := position.Validate(); err != nil {
		return err
	}
	now := time.Now()

	key := positionKey(position.UserID, position.Ticker)
	var existing models.Position
	if err := s.db.Get(key, &existing); err == nil {
		position.CreatedAt = existing.CreatedAt
	} else {
		position.CreatedAt = now
	}
	position.UpdatedAt = now

	if err := s.db.Upsert(key, position); err != nil {
		return fmt.Errorf("failed to upsert position %s: %w", position.Ticker, err)
	}
	return nil
}

// DeletePosition removes the position for (user, ticker). Deleting a
// position that does not exist is not an error.
func (s *Store) DeletePosition(_ context.Context, userID, ticker string) error {
	ticker = models.NormalizeTicker(ticker)
	key := positionKey(userID, ticker)
	if err := s.db.Delete(key, models.Position{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete position %s: %w", ticker, err)
	}
	return nil
}

// GetPosition fetches one position, or nil when it does not exist.
func (s *Store) GetPosition(_ context.Context, userID, ticker string) (*models.Position, error) {
	ticker = models.NormalizeTicker(ticker)
	var position models.Position
	if err := s.db.Get(positionKey(userID, ticker), &position); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get position %s: %w", ticker, err)
	}
	return &position, nil
}

// ListPositions returns all positions for a user, ordered by ticker.
func (s *Store) ListPositions(_ context.Context, userID string) ([]models.Position, error) {
	var all []models.Position
	if err := s.db.Find(&all, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Ticker < all[j].Ticker
	})
	return all, nil
}

// SaveTargets replaces the user's allocation-target table wholesale.
func (s *Store) SaveTargets(_ context.Context, userID string, targets models.AllocationTargets) error {
	if err := targets.Validate(); err != nil {
		return err
	}
	record := models.TargetRecord{
		UserID:    userID,
		Targets:   targets,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Upsert(userID, &record); err != nil {
		return fmt.Errorf("failed to save targets for %s: %w", userID, err)
	}
	return nil
}

// GetTargets returns the saved allocation targets, or nil when none exist.
func (s *Store) GetTargets(_ context.Context, userID string) (models.AllocationTargets, error) {
	var record models.TargetRecord
	if err := s.db.Get(userID, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get targets for %s: %w", userID, err)
	}
	return record.Targets, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
