package ask

import (
	"errors"

	"sheet-graph/core/graph"
	"sheet-graph/core/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// Request is a natural-language question.
type Request struct {
	Question string `json:"question" validate:"required"`
}

// Handler handles HTTP requests for question answering.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ask routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/ask", h.HandleAsk)
}

// HandleAsk answers a question about the ingested spreadsheets.
// @Summary Ask Question
// @Description Generates a Cypher query for the question and returns the query together with its records.
// @Tags ask
// @Accept json
// @Produce json
// @Param request body Request true "Question"
// @Success 200 {object} Answer
// @Failure 400 {object} map[string]string "Invalid request or query"
// @Failure 501 {object} map[string]string "Graph store cannot run queries"
// @Failure 502 {object} map[string]string "Model unavailable"
// @Router /ask [post]
func (h *Handler) HandleAsk(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	answer, err := h.service.Ask(c.Context(), req.Question)
	switch {
	case err == nil:
		return c.JSON(answer)
	case errors.Is(err, ErrGeneration), errors.Is(err, ErrEmptyQuery):
		l.Warn("Query generation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, graph.ErrQueryUnsupported):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Warn("Generated query failed", zap.String("cypher", answer.Query), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "cypher": answer.Query})
	}
}
