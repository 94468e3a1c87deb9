package repository

import (
	"context"

	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
)

// MovementRepository puerto de la bitácora inmutable de movimientos
// (solo inserción y lectura; sin update ni delete).
type MovementRepository interface {
	// Create inserta un movimiento. Asigna ID si viene vacío.
	Create(ctx context.Context, m *entity.Movement) error
	// ListByProduct devuelve los movimientos de un producto ordenados por
	// fecha descendente (los más recientes primero).
	ListByProduct(ctx context.Context, productName string) ([]*entity.Movement, error)
}
