package ask

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"sheet-graph/core/graph"
	graphmocks "sheet-graph/core/graph/mocks"
	llmmocks "sheet-graph/core/llm/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Plain", "MATCH (n) RETURN n", "MATCH (n) RETURN n"},
		{"Fenced", "```cypher\nMATCH (n) RETURN n\n```", "MATCH (n) RETURN n"},
		{"BareFence", "```MATCH (n) RETURN n```", "MATCH (n) RETURN n"},
		{"EscapedNewline", `MATCH (n)\nRETURN n`, "MATCH (n) RETURN n"},
		{"EscapedQuote", `MATCH (c:Constant {value: \"Product B\"}) RETURN c`, `MATCH (c:Constant {value: "Product B"}) RETURN c`},
		{"Whitespace", "  \n MATCH (n) RETURN n \n", "MATCH (n) RETURN n"},
		{"Empty", "```cypher```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanQuery(tt.raw))
		})
	}
}

func TestQuestionPrompt(t *testing.T) {
	p := questionPrompt(`Revenue of "Product B"?`)
	assert.Contains(t, p, `"Revenue of \"Product B\"?"`)
	assert.True(t, strings.HasSuffix(p, "Cypher:"))
	assert.Contains(t, schemaPrompt, "(Formula)-[:DEPENDS_ON]->(Cell)")
}

func TestService_Ask(t *testing.T) {
	ctx := context.Background()
	gen := new(llmmocks.Generator)
	store := new(graphmocks.Store)

	gen.On("Generate", ctx, schemaPrompt, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Product B")
	})).Return("```cypher\nMATCH (t:Cell) RETURN t.raw_value AS Revenue\n```", nil)
	store.On("Query", ctx, "MATCH (t:Cell) RETURN t.raw_value AS Revenue").
		Return([]map[string]any{{"Revenue": "200"}}, nil)

	svc := NewService(gen, store, zap.NewNop())
	answer, err := svc.Ask(ctx, "Revenue of Product B?")
	require.NoError(t, err)
	assert.Equal(t, "MATCH (t:Cell) RETURN t.raw_value AS Revenue", answer.Query)
	assert.Equal(t, []map[string]any{{"Revenue": "200"}}, answer.Records)
}

func TestService_AskErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Generation", func(t *testing.T) {
		gen := new(llmmocks.Generator)
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("", errors.New("quota"))
		_, err := NewService(gen, new(graphmocks.Store), zap.NewNop()).Ask(ctx, "q")
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("Empty", func(t *testing.T) {
		gen := new(llmmocks.Generator)
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("```", nil)
		_, err := NewService(gen, new(graphmocks.Store), zap.NewNop()).Ask(ctx, "q")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("NilRecords", func(t *testing.T) {
		gen := new(llmmocks.Generator)
		gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("MATCH (n) RETURN n", nil)
		store := new(graphmocks.Store)
		store.On("Query", ctx, "MATCH (n) RETURN n").Return(nil, nil)

		answer, err := NewService(gen, store, zap.NewNop()).Ask(ctx, "q")
		require.NoError(t, err)
		assert.NotNil(t, answer.Records)
		assert.Empty(t, answer.Records)
	})
}

func setupTestApp(t *testing.T, gen *llmmocks.Generator, store graph.Store) *fiber.App {
	t.Helper()
	app := fiber.New()
	f := NewFeature(NewService(gen, store, zap.NewNop()))
	require.True(t, f.IsEnabled())
	require.NoError(t, f.Load(app))
	return app
}

func ask(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleAsk(t *testing.T) {
	gen := new(llmmocks.Generator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("MATCH (n) RETURN n.name AS name", nil)
	store := new(graphmocks.Store)
	store.On("Query", mock.Anything, "MATCH (n) RETURN n.name AS name").Return([]map[string]any{{"name": "Q1_Table1"}}, nil)

	app := setupTestApp(t, gen, store)
	status, body := ask(t, app, `{"question":"Which tables exist?"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "MATCH (n) RETURN n.name AS name", body["cypher"])
	assert.Len(t, body["answer"], 1)
}

func TestHandleAsk_Errors(t *testing.T) {
	t.Run("Validation", func(t *testing.T) {
		app := setupTestApp(t, new(llmmocks.Generator), new(graphmocks.Store))
		status, _ := ask(t, app, `{}`)
		assert.Equal(t, 400, status)
	})

	t.Run("ModelDown", func(t *testing.T) {
		gen := new(llmmocks.Generator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("timeout"))
		app := setupTestApp(t, gen, new(graphmocks.Store))
		status, _ := ask(t, app, `{"question":"q"}`)
		assert.Equal(t, 502, status)
	})

	t.Run("Unsupported", func(t *testing.T) {
		gen := new(llmmocks.Generator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("MATCH (n) RETURN n", nil)
		app := setupTestApp(t, gen, graph.NewMemoryStore())
		status, _ := ask(t, app, `{"question":"q"}`)
		assert.Equal(t, 501, status)
	})

	t.Run("BadQuery", func(t *testing.T) {
		gen := new(llmmocks.Generator)
		gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("MATCH (n RETURN n", nil)
		store := new(graphmocks.Store)
		store.On("Query", mock.Anything, "MATCH (n RETURN n").Return(nil, errors.New("syntax error"))
		app := setupTestApp(t, gen, store)

		status, body := ask(t, app, `{"question":"q"}`)
		assert.Equal(t, 400, status)
		assert.Equal(t, "MATCH (n RETURN n", body["cypher"])
	})
}
