package inventory

import (
	"context"

	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
)

// TxRunner ejecuta el callback dentro de una transacción del almacén y le
// entrega repositorios atados a esa transacción. Commit si fn devuelve nil,
// Rollback si devuelve error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error) error
}
