package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// ApplyMovementUseCase aplica un movimiento canónico a su producto de forma
// atómica: bloqueo de fila (SELECT FOR UPDATE) sobre el producto, mutación del
// total corriente y alta del movimiento en la bitácora, todo en la misma
// transacción. Los movimientos concurrentes sobre el mismo producto se
// serializan por el bloqueo; productos distintos no se bloquean entre sí.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, log *logger.Logger) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, log: log}
}

// Apply ejecuta la transacción y devuelve el ID del movimiento registrado.
// Errores de negocio: domain.ErrProductNotFound y domain.ErrInsufficientStock
// (descarga sobre producto inexistente o sin stock suficiente); en ambos el
// stock queda intacto.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, mov *entity.Movement) (string, error) {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}

	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error {
		product, err := products.GetForUpdate(ctx, mov.ProductName)
		if err != nil {
			return err
		}

		switch mov.MovementType {
		case entity.MovementTypeLoad:
			if err := uc.applyLoad(ctx, products, product, mov); err != nil {
				return err
			}
		case entity.MovementTypeUnload:
			if err := uc.applyUnload(ctx, products, product, mov); err != nil {
				return err
			}
		default:
			// El validador ya rechazó cualquier otro tipo; llegar aquí es una
			// violación de invariante interna, no un error del cliente.
			return fmt.Errorf("invalid movement type %q reached stock update", mov.MovementType)
		}

		// Alta en la bitácora dentro de la misma transacción: el total
		// corriente y el historial no pueden divergir por una caída entre
		// ambas escrituras.
		return movements.Create(ctx, mov)
	})
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// applyLoad suma la cantidad, actualiza lastUpdatedBy y aplica la política de
// caducidad más próxima. Si el producto no existía, fija createdAt.
//
// La cantidad viaja como incremento y la suma la hace el Upsert del almacén:
// FOR UPDATE sobre un producto aún inexistente no bloquea nada, así que dos
// primeras cargas concurrentes pueden leer ambas "no existe"; con escritura
// aditiva ninguna pisa a la otra.
func (uc *ApplyMovementUseCase) applyLoad(
	ctx context.Context,
	products repository.ProductRepository,
	product *entity.Product,
	mov *entity.Movement,
) error {
	update := &entity.Product{
		Name:          mov.ProductName,
		Quantity:      &mov.Quantity,
		LastUpdatedBy: &mov.UserID,
	}
	if product == nil {
		now := time.Now()
		update.CreatedAt = &now
	}
	if mov.ExpiryDate != nil {
		var current *string
		if product != nil {
			current = product.NearestExpiry
		}
		if uc.shouldUpdateExpiry(current, *mov.ExpiryDate, mov.ProductName) {
			update.NearestExpiry = mov.ExpiryDate
		}
	}

	return products.Upsert(ctx, update)
}

// applyUnload verifica existencia y stock suficiente y resta la cantidad.
// No toca nearestExpiry: la descarga nunca reduce el conjunto de caducidades
// (simplificación conocida y documentada).
func (uc *ApplyMovementUseCase) applyUnload(
	ctx context.Context,
	products repository.ProductRepository,
	product *entity.Product,
	mov *entity.Movement,
) error {
	if product == nil {
		return domain.ErrProductNotFound
	}
	current := product.CurrentQuantity()
	if current.LessThan(mov.Quantity) {
		return domain.ErrInsufficientStock
	}
	return products.UpdateQuantity(ctx, mov.ProductName, current.Sub(mov.Quantity), mov.UserID)
}

// shouldUpdateExpiry decide si la caducidad del movimiento pasa a ser la más
// próxima del producto: sí cuando no hay caducidad almacenada o cuando la
// nueva es estrictamente anterior. Si la almacenada está malformada se omite
// la comparación y se deja tal cual (degradación permisiva: se registra y se
// sigue, nunca se falla la transacción por esto).
func (uc *ApplyMovementUseCase) shouldUpdateExpiry(current *string, incoming, productName string) bool {
	if current == nil || *current == "" {
		return true
	}
	currentDate, err := time.Parse("2006-01-02", *current)
	if err != nil {
		uc.log.Warn().
			Str("product", productName).
			Str("stored_expiry", *current).
			Msg("caducidad almacenada malformada; se omite la comparación")
		return false
	}
	incomingDate, err := time.Parse("2006-01-02", incoming)
	if err != nil {
		// El validador garantiza el formato; por coherencia no se actualiza.
		return false
	}
	return incomingDate.Before(currentDate)
}
