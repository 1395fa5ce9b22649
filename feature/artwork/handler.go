package artwork

import (
	"errors"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for artwork media.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the artwork routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/artworks")
	group.Get("/:id/media", h.HandleListMedia)

	app.Post("/sync", h.HandleSync)
}

// HandleListMedia returns the stored media rows of one artwork in display
// order.
func (h *Handler) HandleListMedia(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	artworkID, err := c.ParamsInt("id")
	if err != nil || artworkID < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "artwork id must be a non-negative integer",
		})
	}

	rows, err := h.service.ListMedia(c.Context(), artworkID)
	if err != nil {
		l.Error("Listing artwork media failed", zap.Int("artwork_id", artworkID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rows)
}

// HandleSync triggers a reconciliation run and returns its report.
// ?dry_run=true resolves without writing.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := Options{DryRun: c.QueryBool("dry_run")}

	report, err := h.service.Sync(c.Context(), opts)
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))

		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrBucketUnavailable) {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
