package sheets

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"sheet-graph/core/graph"
	graphmocks "sheet-graph/core/graph/mocks"
	"sheet-graph/core/mapper"
	"sheet-graph/core/reconcile"
	"sheet-graph/core/registry"
	"sheet-graph/core/sheet"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func salesRegistry() *registry.Registry {
	reg := registry.New()
	s := sheet.Sheet{Title: "Sales", Rows: []sheet.Row{
		sheet.Values("Product", "Q1", "Double"),
		sheet.Values("Product A", "100", "200"),
		sheet.Values("Product B", "7", "14"),
	}}
	var tables []registry.Table
	for _, p := range mapper.BuildSheet(s) {
		tables = append(tables, p.Table)
	}
	reg.Replace("Sales", tables)
	return reg
}

func setupTestApp(t *testing.T, store graph.Store) *fiber.App {
	t.Helper()
	app := fiber.New()
	r := reconcile.NewReconciler(salesRegistry(), store, zap.NewNop())
	require.NoError(t, NewFeature(r, zap.NewNop()).Load(app))
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/sheets/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleUpdate_Formula(t *testing.T) {
	store := graph.NewMemoryStore()
	app := setupTestApp(t, store)

	status, body := post(t, app, `{"address":"C3","sheetName":"Sales","value":21,"formula":"=B3*3"}`)
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["resolved"])
	assert.Equal(t, "Sales_Table1!C3", body["cell_id"])
	assert.Equal(t, "Double", body["column"])

	props, ok := store.Node(graph.Cell("Sales_Table1!C3"))
	require.True(t, ok)
	assert.Equal(t, "21", props[graph.PropRawValue])
	assert.True(t, store.HasLink(graph.Formula("=B3*3"), graph.RelDependsOn, graph.Cell("Sales_Table1!B3")))
}

func TestHandleUpdate_SheetAlias(t *testing.T) {
	store := graph.NewMemoryStore()
	app := setupTestApp(t, store)

	status, _ := post(t, app, `{"address":"B2","sheet":"Sales","value":"150"}`)
	require.Equal(t, 200, status)
	assert.True(t, store.HasLink(graph.Cell("Sales_Table1!B2"), graph.RelUsesConstant, graph.Constant("150")))
}

func TestHandleUpdate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		reason string
	}{
		{"MissingAddress", `{"sheetName":"Sales","value":1}`, 400, ""},
		{"MissingSheet", `{"address":"B2","value":1}`, 400, ""},
		{"InvalidJSON", `{`, 400, ""},
		{"UnknownSheet", `{"address":"B2","sheetName":"Other","value":1}`, 422, string(reconcile.ReasonUnregisteredSheet)},
		{"HeaderRow", `{"address":"B1","sheetName":"Sales","value":1}`, 422, string(reconcile.ReasonRowNotInBlock)},
		{"Malformed", `{"address":"12","sheetName":"Sales","value":1}`, 422, string(reconcile.ReasonMalformedAddress)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(graphmocks.Store)
			app := setupTestApp(t, store)

			status, body := post(t, app, tt.body)
			assert.Equal(t, tt.status, status)
			if tt.reason != "" {
				assert.Equal(t, false, body["resolved"])
				assert.Equal(t, tt.reason, body["reason"])
			}
			store.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleUpdate_GraphFailure(t *testing.T) {
	store := new(graphmocks.Store)
	store.On("Apply", mock.Anything, mock.Anything).Return(errors.New("unavailable"))
	app := setupTestApp(t, store)

	status, body := post(t, app, `{"address":"B2","sheetName":"Sales","value":1}`)
	assert.Equal(t, 500, status)
	assert.Contains(t, body["error"], "unavailable")
}

func TestUpdateRequest_Event(t *testing.T) {
	e := UpdateRequest{Address: " C3 ", Sheet: "Sales", SheetName: "", Value: 1.5, Formula: "=A1 + B1 "}.Event()
	assert.Equal(t, "C3", e.Address)
	assert.Equal(t, "Sales", e.Sheet)
	assert.Equal(t, "=A1 + B1 ", e.Formula)

	e = UpdateRequest{Address: "C3", SheetName: "Sales", Formula: "  "}.Event()
	assert.Empty(t, e.Formula)

	e = UpdateRequest{SheetName: "Q1", Sheet: "ignored"}.Event()
	assert.Equal(t, "Q1", e.Sheet)
}

func TestLoader(t *testing.T) {
	f := NewFeature(reconcile.NewReconciler(registry.New(), graph.NewMemoryStore(), zap.NewNop()), zap.NewNop())
	assert.Equal(t, "sheets", f.Name())
	assert.True(t, f.IsEnabled())
}
