package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeLoad   = "load"   // entrada de mercancía
	MovementTypeUnload = "unload" // salida de mercancía
)

// Movement es el registro histórico inmutable de un cambio de stock.
// Se crea una sola vez desde el validador y nunca se modifica ni se borra;
// la bitácora de movimientos es la fuente de verdad para las vistas de
// historial.
type Movement struct {
	ID           string
	UserID       string
	Date         string // fecha contable YYYY-MM-DD (la aporta el cliente)
	MovementType string // load | unload
	ProductName  string
	Quantity     decimal.Decimal  // > 0 siempre; el tipo indica el signo
	UnitPrice    *decimal.Decimal // solo significativo en load; nil = sin precio
	TotalValue   decimal.Decimal  // quantity * unitPrice en loads con precio > 0, si no 0
	ExpiryDate   *string          // YYYY-MM-DD, solo significativo en load
	Supplier     *string
	Notes        *string
	CreatedAt    time.Time // timestamp del servidor
}

// IsLoad indica si el movimiento es una entrada.
func (m *Movement) IsLoad() bool { return m.MovementType == MovementTypeLoad }
