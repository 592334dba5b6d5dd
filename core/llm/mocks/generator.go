package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Generator is a mock implementation of llm.Generator
type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}
