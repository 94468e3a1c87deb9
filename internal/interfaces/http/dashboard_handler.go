package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// DashboardHandler maneja el resumen del dashboard (protegido).
type DashboardHandler struct {
	query *inventory.ProductQueryUseCase
	log   *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(query *inventory.ProductQueryUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{query: query, log: log}
}

// Summary godoc
// @Summary      Resumen de stock por producto
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   dto.DashboardItem
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /dashboard-data [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	items, err := h.query.DashboardSummary(c.Context())
	if err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(items)
}
