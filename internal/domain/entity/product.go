package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es el estado denormalizado por nombre de producto: una vista
// materializada de la bitácora de movimientos para consultas rápidas de stock.
// Quantity se actualiza transaccionalmente con cada movimiento; los agregados
// de precio y caducidad se recalculan en lectura desde la bitácora.
//
// Los campos son punteros porque un documento puede venir incompleto del
// almacén (escrito por fuera de la aplicación); el dashboard descarta esas
// filas en vez de fallar.
type Product struct {
	Name          string
	Quantity      *decimal.Decimal
	NearestExpiry *string // YYYY-MM-DD; solo avanza hacia fechas más tempranas
	LastUpdatedBy *string
	CreatedAt     *time.Time // se fija una sola vez, al crear
}

// CurrentQuantity devuelve la cantidad actual, tratando ausencia como cero
// (producto nuevo o documento incompleto).
func (p *Product) CurrentQuantity() decimal.Decimal {
	if p == nil || p.Quantity == nil {
		return decimal.Zero
	}
	return *p.Quantity
}
