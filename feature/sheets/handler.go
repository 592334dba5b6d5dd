package sheets

import (
	"strings"

	"sheet-graph/core/logger"
	"sheet-graph/core/reconcile"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// UpdateRequest is the webhook payload for one edited cell.
type UpdateRequest struct {
	Address   string `json:"address"`
	SheetName string `json:"sheetName"`
	Sheet     string `json:"sheet"`
	Value     any    `json:"value"`
	Formula   string `json:"formula"`
}

// Event converts the request into a reconcile event.
func (r UpdateRequest) Event() reconcile.Event {
	name := r.SheetName
	if name == "" {
		name = r.Sheet
	}
	formula := r.Formula
	if strings.TrimSpace(formula) == "" {
		formula = ""
	}
	return reconcile.Event{
		Address: strings.TrimSpace(r.Address),
		Sheet:   name,
		Value:   r.Value,
		Formula: formula,
	}
}

// Handler handles change notifications.
type Handler struct {
	reconciler *reconcile.Reconciler
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(reconciler *reconcile.Reconciler, logger *zap.Logger) *Handler {
	return &Handler{reconciler: reconciler, logger: logger}
}

// RegisterRoutes registers the webhook routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sheets/update", h.HandleUpdate)
}

// HandleUpdate applies one cell change.
// @Summary Apply Cell Update
// @Description Maps the edited cell to its registered block and updates the cell's value, constant or formula in the graph.
// @Tags sheets
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Edited cell"
// @Success 200 {object} reconcile.Result
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} reconcile.Result "Address could not be resolved"
// @Failure 500 {object} map[string]string "Graph write failed"
// @Router /sheets/update [post]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	event := req.Event()
	if err := validate.Struct(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.reconciler.ReconcileCell(c.Context(), event)
	if err != nil {
		l.Error("Cell update failed", zap.String("sheet", event.Sheet), zap.String("address", event.Address), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !result.Resolved {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	l.Info("Cell updated", zap.String("cell", result.CellID), zap.Int("ops", result.Ops))
	return c.JSON(result)
}
