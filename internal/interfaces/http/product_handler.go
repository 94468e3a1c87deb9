package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// ProductHandler maneja el detalle de producto (protegido).
type ProductHandler struct {
	query *inventory.ProductQueryUseCase
	log   *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(query *inventory.ProductQueryUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{query: query, log: log}
}

// Detail godoc
// @Summary      Detalle de un producto: stock, precio promedio, caducidades y movimientos
// @Tags         products
// @Produce      json
// @Param        name  path  string  true  "Nombre del producto (URL-encoded)"
// @Success      200  {object}  dto.ProductDetail
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{name} [get]
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	name, err := productNameParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product name is required"})
	}

	detail, err := h.query.ProductDetail(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(detail)
}

// productNameParam extrae y normaliza :name. Los nombres de producto llevan
// espacios y tildes, así que llegan URL-encoded en la ruta.
func productNameParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("empty product name")
	}
	return name, nil
}
