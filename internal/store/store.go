package store

import (
	"context"
	"errors"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// ErrNotFound reports a delete for an id that does not exist.
var ErrNotFound = errors.New("scenario not found")

// ErrUnavailable reports a write against a store that never opened.
var ErrUnavailable = errors.New("scenario store unavailable")

// Store persists saved scenarios. Scenarios are immutable: there is no
// update operation, only save, list, and delete.
type Store interface {
	// Save assigns the scenario an id and creation timestamp and
	// persists it.
	Save(ctx context.Context, s *model.SavedScenario) error
	// List returns all scenarios, newest first.
	List(ctx context.Context) ([]model.SavedScenario, error)
	// Delete removes a scenario by id, ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
	Close() error
}
