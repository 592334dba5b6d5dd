package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sheet-graph/core/graph"
	graphmocks "sheet-graph/core/graph/mocks"
	"sheet-graph/core/registry"
	"sheet-graph/core/sheet/xlsx"
	"sheet-graph/core/storage"
	"sheet-graph/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, sources Sources, store graph.Store, client *mocks.Client) (*fiber.App, *registry.Registry) {
	t.Helper()
	app := fiber.New()
	reg := registry.New()
	var sc storage.Client
	if client != nil {
		sc = client
	}
	svc := NewService(sources, store, reg, NewHistory(nil), sc, "workbooks", zap.NewNop())
	feature := NewFeature(svc, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, reg
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleIngestSheets(t *testing.T) {
	store := graph.NewMemoryStore()
	app, reg := setupTestApp(t, Sources{SourceSheets: &fakeSource{workbook: salesWorkbook()}}, store, nil)

	status, body := postJSON(t, app, "/ingest", `{"spreadsheetId":"abc"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "abc", body["spreadsheet_id"])
	assert.Len(t, body["sheets"], 2)

	_, ok := reg.Get("Sales")
	assert.True(t, ok)
}

func TestHandleIngestSheets_Validation(t *testing.T) {
	app, _ := setupTestApp(t, Sources{SourceSheets: &fakeSource{workbook: salesWorkbook()}}, graph.NewMemoryStore(), nil)

	status, body := postJSON(t, app, "/ingest", `{}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "SpreadsheetID")

	status, _ = postJSON(t, app, "/ingest", `not json`)
	assert.Equal(t, 400, status)
}

func TestHandleIngestSheets_DryRun(t *testing.T) {
	store := new(graphmocks.Store)
	app, reg := setupTestApp(t, Sources{SourceSheets: &fakeSource{workbook: salesWorkbook()}}, store, nil)

	status, body := postJSON(t, app, "/ingest?dry_run=true", `{"spreadsheetId":"abc"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["dry_run"])
	assert.Zero(t, reg.Len())
	store.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}

func TestHandleIngest_ErrorMapping(t *testing.T) {
	t.Run("FetchFailure", func(t *testing.T) {
		app, _ := setupTestApp(t, Sources{SourceSheets: &fakeSource{err: errors.New("403")}}, graph.NewMemoryStore(), nil)
		status, _ := postJSON(t, app, "/ingest", `{"spreadsheetId":"abc"}`)
		assert.Equal(t, 502, status)
	})

	t.Run("UnknownSource", func(t *testing.T) {
		app, _ := setupTestApp(t, Sources{SourceSheets: &fakeSource{workbook: salesWorkbook()}}, graph.NewMemoryStore(), nil)
		status, _ := postJSON(t, app, "/ingest/object", `{"object":"q1.xlsx"}`)
		assert.Equal(t, 400, status)
	})

	t.Run("GraphFailure", func(t *testing.T) {
		store := new(graphmocks.Store)
		store.On("Apply", mock.Anything, mock.Anything).Return(errors.New("unavailable"))
		app, _ := setupTestApp(t, Sources{SourceSheets: &fakeSource{workbook: salesWorkbook()}}, store, nil)

		status, body := postJSON(t, app, "/ingest", `{"spreadsheetId":"abc"}`)
		assert.Equal(t, 500, status)
		assert.Contains(t, body["error"], "unavailable")
		assert.NotNil(t, body["report"])
	})
}

func xlsxBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Q1"))
	require.NoError(t, f.SetSheetRow("Q1", "A1", &[]any{"Product", "Revenue"}))
	require.NoError(t, f.SetSheetRow("Q1", "A2", &[]any{"Product A", 100}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	content := xlsxBytes(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "workbooks").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "workbooks", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "workbooks", "q1.xlsx", mock.Anything, int64(len(content)), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("GetObject", mock.Anything, "workbooks", "q1.xlsx", minio.GetObjectOptions{}).
		Return(io.NopCloser(bytes.NewReader(content)), nil)

	store := graph.NewMemoryStore()
	sources := Sources{SourceObject: xlsx.NewObjectSource(client, "workbooks")}
	app, reg := setupTestApp(t, sources, store, client)

	body, contentType := multipartBody(t, "q1.xlsx", content)
	req := httptest.NewRequest("POST", "/ingest/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	entry, ok := reg.Get("Q1")
	require.True(t, ok)
	assert.Equal(t, "Q1_Table1", entry.Tables[0].Name)
	assert.True(t, store.HasLink(graph.Cell("Q1_Table1!B2"), graph.RelUsesConstant, graph.Constant("100")))
	client.AssertExpectations(t)
}

func TestHandleUpload_Rejects(t *testing.T) {
	app, _ := setupTestApp(t, Sources{}, graph.NewMemoryStore(), new(mocks.Client))

	body, contentType := multipartBody(t, "notes.csv", []byte("a,b"))
	req := httptest.NewRequest("POST", "/ingest/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	req = httptest.NewRequest("POST", "/ingest/upload", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleListObjects(t *testing.T) {
	modified := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "q1.xlsx", Size: 2048, LastModified: modified}
	ch <- minio.ObjectInfo{Key: "readme.txt", Size: 10}
	ch <- minio.ObjectInfo{Key: "archive/Q2.XLSX", Size: 4096}
	close(ch)
	var objects <-chan minio.ObjectInfo = ch

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "workbooks", minio.ListObjectsOptions{Recursive: true}).Return(objects)
	app, _ := setupTestApp(t, Sources{}, graph.NewMemoryStore(), client)

	resp, err := app.Test(httptest.NewRequest("GET", "/ingest/objects", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var workbooks []StoredWorkbook
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&workbooks))
	require.Len(t, workbooks, 2)
	assert.Equal(t, "q1.xlsx", workbooks[0].Name)
	assert.Equal(t, int64(2048), workbooks[0].Size)
	assert.True(t, modified.Equal(workbooks[0].LastModified))
	assert.Equal(t, "archive/Q2.XLSX", workbooks[1].Name)
}

func TestHandleListObjects_ListError(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)
	var objects <-chan minio.ObjectInfo = ch

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "workbooks", mock.Anything).Return(objects)
	app, _ := setupTestApp(t, Sources{}, graph.NewMemoryStore(), client)

	resp, err := app.Test(httptest.NewRequest("GET", "/ingest/objects", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleListObjects_NoStorage(t *testing.T) {
	app, _ := setupTestApp(t, Sources{}, graph.NewMemoryStore(), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/ingest/objects", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleRemoveObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "workbooks", "Q1 2024.xlsx", minio.RemoveObjectOptions{}).Return(nil)
	client.On("RemoveObject", mock.Anything, "workbooks", "locked.xlsx", minio.RemoveObjectOptions{}).Return(errors.New("denied"))
	app, _ := setupTestApp(t, Sources{}, graph.NewMemoryStore(), client)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/ingest/objects/Q1%202024.xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/ingest/objects/locked.xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	client.AssertExpectations(t)
}

func TestLoader(t *testing.T) {
	svc := NewService(Sources{}, graph.NewMemoryStore(), registry.New(), NewHistory(nil), nil, "", zap.NewNop())
	feature := NewFeature(svc, zap.NewNop())
	assert.Equal(t, "ingest", feature.Name())
	assert.False(t, feature.IsEnabled())

	svc = NewService(Sources{SourceSheets: &fakeSource{}}, graph.NewMemoryStore(), registry.New(), NewHistory(nil), nil, "", zap.NewNop())
	assert.True(t, NewFeature(svc, zap.NewNop()).IsEnabled())
}
