package ingest

import (
	"errors"
	"path/filepath"
	"strings"

	"sheet-graph/core/logger"
	"sheet-graph/core/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// SheetsRequest asks for a Google Sheets spreadsheet to be ingested.
type SheetsRequest struct {
	SpreadsheetID string `json:"spreadsheetId" validate:"required"`
}

// ObjectRequest asks for an XLSX object in the workbook bucket to be ingested.
type ObjectRequest struct {
	Object string `json:"object" validate:"required"`
}

// Handler handles HTTP requests for ingestion.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the ingestion routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ingest")
	group.Post("/", h.HandleIngestSheets)
	group.Post("/object", h.HandleIngestObject)
	group.Post("/upload", h.HandleUpload)
	group.Get("/objects", h.HandleListObjects)
	group.Delete("/objects/:object", h.HandleRemoveObject)
}

// HandleIngestSheets ingests a Google Sheets spreadsheet.
// @Summary Ingest Spreadsheet
// @Description Fetches the spreadsheet with grid data, rebuilds its graph and replaces the block registry of every sheet.
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body SheetsRequest true "Spreadsheet"
// @Param dry_run query boolean false "Plan only"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Spreadsheet could not be fetched"
// @Failure 500 {object} map[string]interface{} "Graph write failed"
// @Router /ingest [post]
func (h *Handler) HandleIngestSheets(c *fiber.Ctx) error {
	var req SheetsRequest
	if err := h.bind(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.run(c, SourceSheets, req.SpreadsheetID)
}

// HandleIngestObject ingests an XLSX workbook stored in the bucket.
// @Summary Ingest Stored Workbook
// @Description Reads an XLSX object from the workbook bucket and ingests it.
// @Tags ingest
// @Accept json
// @Produce json
// @Param request body ObjectRequest true "Object"
// @Param dry_run query boolean false "Plan only"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 502 {object} map[string]string "Workbook could not be read"
// @Failure 500 {object} map[string]interface{} "Graph write failed"
// @Router /ingest/object [post]
func (h *Handler) HandleIngestObject(c *fiber.Ctx) error {
	var req ObjectRequest
	if err := h.bind(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return h.run(c, SourceObject, req.Object)
}

// HandleUpload stores an uploaded workbook and ingests it.
// @Summary Upload Workbook
// @Description Uploads an XLSX file to the workbook bucket, then ingests it.
// @Tags ingest
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX workbook"
// @Param name formData string false "Object name (defaults to the file name)"
// @Param dry_run query boolean false "Plan only"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Invalid upload"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]interface{} "Upload or graph write failed"
// @Router /ingest/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = filepath.Base(file.Filename)
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only .xlsx workbooks are supported"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	if err := h.service.Upload(c.Context(), name, f, file.Size); err != nil {
		l.Error("Workbook upload failed", zap.String("object", name), zap.Error(err))
		if errors.Is(err, ErrStorageUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return h.run(c, SourceObject, name)
}

// HandleListObjects lists the stored workbooks.
// @Summary List Stored Workbooks
// @Description Lists the XLSX objects in the workbook bucket.
// @Tags ingest
// @Produce json
// @Success 200 {array} StoredWorkbook
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Listing failed"
// @Router /ingest/objects [get]
func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	workbooks, err := h.service.Workbooks(c.Context())
	if err != nil {
		return h.storageError(c, err)
	}
	return c.JSON(workbooks)
}

// HandleRemoveObject deletes a stored workbook.
// @Summary Remove Stored Workbook
// @Description Deletes an XLSX object from the workbook bucket. The graph is not modified.
// @Tags ingest
// @Param object path string true "Object name"
// @Success 204
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Removal failed"
// @Router /ingest/objects/{object} [delete]
func (h *Handler) HandleRemoveObject(c *fiber.Ctx) error {
	name := utils.UnescapePath(c.Params("object"))
	if err := h.service.RemoveWorkbook(c.Context(), name); err != nil {
		return h.storageError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) storageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrStorageUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.logger, c).Error("Workbook storage failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func (h *Handler) bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return validate.Struct(req)
}

func (h *Handler) run(c *fiber.Ctx, source, id string) error {
	l := logger.WithRayID(h.logger, c).With(zap.String("source", source), zap.String("id", id))

	var (
		report *Report
		err    error
	)
	if c.QueryBool("dry_run") {
		report, err = h.service.Plan(c.Context(), source, id)
	} else {
		report, err = h.service.Ingest(c.Context(), source, id)
	}

	switch {
	case err == nil:
		return c.JSON(report)
	case errors.Is(err, ErrUnknownSource):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrFetch):
		l.Warn("Workbook fetch failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	}
}
