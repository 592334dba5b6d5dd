package ask

import (
	"context"
	"errors"
	"fmt"

	"sheet-graph/core/graph"
	"sheet-graph/core/llm"

	"go.uber.org/zap"
)

var (
	// ErrGeneration wraps failures of the language model.
	ErrGeneration = errors.New("query generation failed")
	// ErrEmptyQuery is returned when the model produced no query text.
	ErrEmptyQuery = errors.New("model returned an empty query")
)

// Answer is a generated query and the records it returned.
type Answer struct {
	Question string           `json:"question"`
	Query    string           `json:"cypher"`
	Records  []map[string]any `json:"answer"`
}

// Service answers natural-language questions over the graph.
type Service struct {
	generator llm.Generator
	store     graph.Store
	logger    *zap.Logger
}

// NewService creates a new question answering service.
func NewService(generator llm.Generator, store graph.Store, logger *zap.Logger) *Service {
	return &Service{generator: generator, store: store, logger: logger}
}

// Ask generates a query for the question and executes it verbatim.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	raw, err := s.generator.Generate(ctx, schemaPrompt, questionPrompt(question))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	query := CleanQuery(raw)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	s.logger.Info("Generated query", zap.String("cypher", query))

	records, err := s.store.Query(ctx, query)
	if err != nil {
		return &Answer{Question: question, Query: query}, fmt.Errorf("failed to run generated query: %w", err)
	}
	if records == nil {
		records = []map[string]any{}
	}
	return &Answer{Question: question, Query: query, Records: records}, nil
}
