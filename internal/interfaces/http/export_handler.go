package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/infrastructure/excel"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// ProductSheetGenerator genera la ficha PDF de un producto.
type ProductSheetGenerator interface {
	GenerateProductSheet(ctx context.Context, detail *dto.ProductDetail) ([]byte, error)
}

// ExportHandler maneja las exportaciones de producto (XLSX y PDF, protegido).
type ExportHandler struct {
	query *inventory.ProductQueryUseCase
	pdf   ProductSheetGenerator
	log   *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(query *inventory.ProductQueryUseCase, pdf ProductSheetGenerator, log *logger.Logger) *ExportHandler {
	return &ExportHandler{query: query, pdf: pdf, log: log}
}

// MovementsXLSX godoc
// @Summary      Exportar la bitácora de un producto a XLSX
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        name  path  string  true  "Nombre del producto (URL-encoded)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{name}/movements.xlsx [get]
func (h *ExportHandler) MovementsXLSX(c *fiber.Ctx) error {
	detail, err := h.productDetail(c)
	if detail == nil {
		return err
	}
	book, err := excel.MovementsWorkbook(detail)
	if err != nil {
		return internalError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-movements.xlsx"`, detail.ProductName))
	return c.Send(book)
}

// ProductSheetPDF godoc
// @Summary      Ficha imprimible de un producto en PDF
// @Tags         exports
// @Produce      application/pdf
// @Param        name  path  string  true  "Nombre del producto (URL-encoded)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{name}/sheet.pdf [get]
func (h *ExportHandler) ProductSheetPDF(c *fiber.Ctx) error {
	detail, err := h.productDetail(c)
	if detail == nil {
		return err
	}
	sheet, err := h.pdf.GenerateProductSheet(c.Context(), detail)
	if err != nil {
		return internalError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-sheet.pdf"`, detail.ProductName))
	return c.Send(sheet)
}

// productDetail resuelve :name y carga el detalle. Si devuelve detail nil la
// respuesta de error ya quedó escrita; el llamador solo propaga err.
func (h *ExportHandler) productDetail(c *fiber.Ctx) (*dto.ProductDetail, error) {
	name, err := productNameParam(c)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product name is required"})
	}
	detail, err := h.query.ProductDetail(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		return nil, internalError(c, h.log, err)
	}
	return detail, nil
}
