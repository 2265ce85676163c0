package store

import (
	"context"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// NoopStore stands in when the scenario database cannot be opened: the
// catalogue reads as empty and writes report ErrUnavailable, so the rest
// of the tool keeps working.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Save(_ context.Context, _ *model.SavedScenario) error { return ErrUnavailable }
func (n *NoopStore) List(_ context.Context) ([]model.SavedScenario, error) {
	return nil, nil
}
func (n *NoopStore) Delete(_ context.Context, _ string) error { return ErrUnavailable }
func (n *NoopStore) Close() error                             { return nil }
