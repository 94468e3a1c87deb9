package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/infrastructure/metrics"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// MovementHandler maneja el registro de movimientos de stock (protegido).
type MovementHandler struct {
	apply *inventory.ApplyMovementUseCase
	log   *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *inventory.ApplyMovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{apply: apply, log: log}
}

// Create godoc
// @Summary      Registrar movimiento de stock (carga o descarga)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]interface{}  true  "date, movementType (load/unload), productName, quantity; opcionales unitPrice, expiryDate, supplier, notes"
// @Success      201   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
	}

	// Decodificación manual con UseNumber: el payload llega sin tipar y el
	// validador necesita distinguir números JSON de strings numéricos sin
	// perder precisión decimal por el camino.
	payload, err := decodePayload(c.Body())
	if err != nil {
		metrics.MovementsRejected.WithLabelValues("validation").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload"})
	}

	movement, err := inventory.ValidateMovement(payload, userID, time.Now())
	if err != nil {
		metrics.MovementsRejected.WithLabelValues("validation").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	movementID, err := h.apply.Apply(c.Context(), movement)
	if err != nil {
		// Descarga inválida: para el cliente es una petición mal formada
		// respecto al estado actual del almacén, no un conflicto del servidor.
		if errors.Is(err, domain.ErrProductNotFound) {
			metrics.MovementsRejected.WithLabelValues("not_found").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "cannot unload a product that does not exist"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.MovementsRejected.WithLabelValues("insufficient_stock").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock for unload"})
		}
		metrics.MovementsRejected.WithLabelValues("internal").Inc()
		return internalError(c, h.log, err)
	}

	metrics.MovementsApplied.WithLabelValues(movement.MovementType).Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.CreateMovementResponse{
		Message:    "movement recorded successfully",
		MovementID: movementID,
	})
}

// decodePayload decodifica el body a un mapa genérico con json.Number.
// Rechaza cualquier cosa que no sea un objeto JSON.
func decodePayload(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
