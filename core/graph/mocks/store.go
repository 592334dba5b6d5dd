package mocks

import (
	"context"

	"sheet-graph/core/graph"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of graph.Store
type Store struct {
	mock.Mock
}

func (m *Store) Apply(ctx context.Context, batch graph.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *Store) Query(ctx context.Context, query string) ([]map[string]any, error) {
	args := m.Called(ctx, query)
	if records, ok := args.Get(0).([]map[string]any); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
