package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
)

// Neo4jStore persists batches in Neo4j.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore creates a driver for the configured server. The driver connects
// lazily; call Ping to verify connectivity.
func NewNeo4jStore(cfg Config) (*Neo4jStore, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *config.Config) {
			c.SocketConnectTimeout = timeoutDuration
			c.ConnectionAcquisitionTimeout = timeoutDuration
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	return &Neo4jStore{driver: driver, database: cfg.Database}, nil
}

// Apply runs the batch inside a single managed write transaction.
func (s *Neo4jStore) Apply(ctx context.Context, batch Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, op := range batch.Ops {
			query, params, err := Statement(op)
			if err != nil {
				return nil, err
			}
			result, err := tx.Run(ctx, query, params)
			if err != nil {
				return nil, fmt.Errorf("failed to run %s: %w", op.Kind, err)
			}
			if _, err := result.Consume(ctx); err != nil {
				return nil, fmt.Errorf("failed to consume %s: %w", op.Kind, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply batch %q: %w", batch.Scope, err)
	}
	return nil
}

// Query executes query verbatim and returns each record as a map.
func (s *Neo4jStore) Query(ctx context.Context, query string) ([]map[string]any, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	records := make([]map[string]any, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, record.AsMap())
	}
	return records, nil
}

// Ping verifies the server is reachable with the configured credentials.
func (s *Neo4jStore) Ping(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to reach neo4j: %w", err)
	}
	return nil
}

// EnsureIndexes creates a lookup index for each node key. Correctness does not
// depend on them; MERGE lookups do.
func (s *Neo4jStore) EnsureIndexes(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	for _, statement := range IndexStatements() {
		result, err := session.Run(ctx, statement, nil)
		if err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Close shuts the driver down.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Statement renders one operation as a parameterised Cypher statement.
// Labels and relationship types come from the package constants, never from input.
func Statement(op Op) (string, map[string]any, error) {
	switch op.Kind {
	case OpUpsertNode:
		key := op.Node.Label.KeyProperty()
		if key == "" {
			return "", nil, fmt.Errorf("unknown label %q", op.Node.Label)
		}
		query := fmt.Sprintf("MERGE (n:%s {%s: $key})", op.Node.Label, key)
		params := map[string]any{"key": op.Node.Key}
		if len(op.Props) > 0 {
			query += " SET n += $props"
			params["props"] = op.Props
		}
		return query, params, nil

	case OpLink:
		fromKey := op.From.Label.KeyProperty()
		toKey := op.To.Label.KeyProperty()
		if fromKey == "" || toKey == "" {
			return "", nil, fmt.Errorf("unknown label in link %s-%s", op.From.Label, op.To.Label)
		}
		if op.Rel == "" {
			return "", nil, fmt.Errorf("link %s -> %s has no relationship type", op.From, op.To)
		}
		query := strings.Join([]string{
			fmt.Sprintf("MATCH (a:%s {%s: $from})", op.From.Label, fromKey),
			fmt.Sprintf("MATCH (b:%s {%s: $to})", op.To.Label, toKey),
			fmt.Sprintf("MERGE (a)-[:%s]->(b)", op.Rel),
		}, " ")
		return query, map[string]any{"from": op.From.Key, "to": op.To.Key}, nil

	default:
		return "", nil, fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// IndexStatements returns the index definitions for every node label.
func IndexStatements() []string {
	labels := []Label{LabelTable, LabelRow, LabelColumn, LabelCell, LabelFormula, LabelConstant}
	statements := make([]string, 0, len(labels))
	for _, l := range labels {
		statements = append(statements, fmt.Sprintf(
			"CREATE INDEX %s_%s IF NOT EXISTS FOR (n:%s) ON (n.%s)",
			strings.ToLower(string(l)), l.KeyProperty(), l, l.KeyProperty(),
		))
	}
	return statements
}
