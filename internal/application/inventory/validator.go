package inventory

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
)

// datePattern exige los diez caracteres exactos de YYYY-MM-DD antes de validar
// el calendario: time.Parse acepta "2025-1-2" y aquí el formato es de ancho
// fijo para que la comparación lexicográfica de caducidades sea segura.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateMovement normaliza y valida un payload sin tipar y produce el
// registro canónico del movimiento, o lo rechaza con un ValidationError
// preciso. Función pura: sin efectos secundarios; userID y now los fija el
// llamador (usuario autenticado y hora del servidor).
func ValidateMovement(payload map[string]any, userID string, now time.Time) (*entity.Movement, error) {
	if payload == nil {
		return nil, domain.NewValidationError("invalid payload")
	}

	// Campos requeridos: presencia, tipo y no-blancos
	for _, field := range []string{"date", "movementType", "productName"} {
		v, ok := payload[field]
		if !ok || v == nil {
			return nil, domain.NewValidationError("missing field %s", field)
		}
		s, ok := v.(string)
		if !ok {
			return nil, domain.NewValidationError("invalid type for %s", field)
		}
		if strings.TrimSpace(s) == "" {
			return nil, domain.NewValidationError("field %s must not be blank", field)
		}
	}
	rawQty, ok := payload["quantity"]
	if !ok || rawQty == nil {
		return nil, domain.NewValidationError("missing field quantity")
	}

	productName := strings.TrimSpace(payload["productName"].(string))
	date := strings.TrimSpace(payload["date"].(string))

	// movementType se compara sin recortar: el vocabulario es exacto y un
	// valor con blancos alrededor viene de un cliente roto, no de un usuario.
	movementType := payload["movementType"].(string)
	if movementType != entity.MovementTypeLoad && movementType != entity.MovementTypeUnload {
		return nil, domain.NewValidationError("movementType must be '%s' or '%s'", entity.MovementTypeLoad, entity.MovementTypeUnload)
	}

	quantity, ok := toDecimal(rawQty)
	if !ok {
		return nil, domain.NewValidationError("invalid type for quantity")
	}
	if !quantity.IsPositive() {
		return nil, domain.NewValidationError("quantity must be a positive number")
	}

	// unitPrice opcional: >= 0; cero se admite pero cuenta como "sin precio"
	var unitPrice *decimal.Decimal
	if raw, present := payload["unitPrice"]; present && raw != nil {
		price, ok := toDecimal(raw)
		if !ok {
			return nil, domain.NewValidationError("invalid type for unitPrice")
		}
		if price.IsNegative() {
			return nil, domain.NewValidationError("unitPrice must be a non-negative number")
		}
		unitPrice = &price
	}

	totalValue := decimal.Zero
	if movementType == entity.MovementTypeLoad && unitPrice != nil && unitPrice.IsPositive() {
		totalValue = quantity.Mul(*unitPrice)
	}

	if !isCalendarDate(date) {
		return nil, domain.NewValidationError("invalid date format for date, expected YYYY-MM-DD")
	}

	var expiryDate *string
	if raw, present := payload["expiryDate"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return nil, domain.NewValidationError("invalid type for expiryDate")
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			if !isCalendarDate(trimmed) {
				return nil, domain.NewValidationError("invalid date format for expiryDate, expected YYYY-MM-DD")
			}
			expiryDate = &trimmed
		}
	}

	supplier, err := optionalString(payload, "supplier")
	if err != nil {
		return nil, err
	}
	notes, err := optionalString(payload, "notes")
	if err != nil {
		return nil, err
	}

	return &entity.Movement{
		UserID:       userID,
		Date:         date,
		MovementType: movementType,
		ProductName:  productName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalValue:   totalValue,
		ExpiryDate:   expiryDate,
		Supplier:     supplier,
		Notes:        notes,
		CreatedAt:    now,
	}, nil
}

// toDecimal acepta números JSON (json.Number o float64) y strings numéricos,
// como hacía el sistema anterior con los payloads del frontend.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// isCalendarDate valida formato estricto YYYY-MM-DD y fecha de calendario real.
func isCalendarDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// optionalString devuelve el campo recortado, o nil si falta o queda en blanco.
func optionalString(payload map[string]any, field string) (*string, error) {
	raw, present := payload[field]
	if !present || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, domain.NewValidationError("invalid type for %s", field)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}
