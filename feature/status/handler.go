package status

import (
	"errors"

	"sheet-graph/core/logger"
	"sheet-graph/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for status checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/", h.HandleStatus)
	group.Get("/history", h.HandleHistory)
	group.Get("/registry/:sheet", h.HandleLayout)
}

// HandleStatus runs every check.
// @Summary Service Status
// @Description Checks the graph store, the history database and the workbook bucket, and lists the registered sheet layouts.
// @Tags status
// @Produce json
// @Param fix query boolean false "Migrate the history table and create the bucket when missing"
// @Success 200 {object} Report
// @Failure 503 {object} Report "The graph store is unreachable"
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	report := h.service.Run(c.Context(), fix)
	if report.Graph.Status != StateOK {
		l.Warn("Graph store unreachable", zap.String("error", report.Graph.Error))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleHistory lists recent ingestion runs.
// @Summary Ingestion History
// @Description Lists the most recent ingestion runs, newest first.
// @Tags status
// @Produce json
// @Param limit query int false "Maximum number of runs (default 50)"
// @Success 200 {array} ingest.IngestionRun
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /status/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.History(c.Context(), utils.ToInt(c.Query("limit")))
	if err != nil {
		l.Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleLayout returns the registered layout of one sheet.
// @Summary Sheet Layout
// @Description Returns the block layout registered for a sheet by the last ingestion.
// @Tags status
// @Produce json
// @Param sheet path string true "Sheet name"
// @Success 200 {object} registry.Entry
// @Failure 404 {object} map[string]string "Sheet not registered"
// @Router /status/registry/{sheet} [get]
func (h *Handler) HandleLayout(c *fiber.Ctx) error {
	entry, err := h.service.Layout(utils.UnescapePath(c.Params("sheet")))
	if errors.Is(err, ErrSheetNotRegistered) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entry)
}
