package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
)

// ProductRepository puerto de persistencia del estado denormalizado por producto.
// Get/GetForUpdate devuelven (nil, nil) cuando el producto no existe: la
// ausencia es un estado válido ("producto nuevo").
type ProductRepository interface {
	// Get obtiene el producto por nombre (clave exacta, sensible a mayúsculas).
	Get(ctx context.Context, name string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE);
	// serializa los movimientos concurrentes sobre el mismo producto sin
	// bloquear productos distintos. Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, name string) (*entity.Product, error)
	// Upsert escribe con semántica merge-aditiva: crea el documento si no
	// existe; si ya existe, Quantity se suma a la cantidad almacenada (el
	// llamador pasa el incremento, no el total). La suma la resuelve el
	// almacén para que dos creaciones concurrentes del mismo producto no se
	// pisen. NearestExpiry solo se escribe cuando viene no-nil; CreatedAt
	// solo en la creación.
	Upsert(ctx context.Context, p *entity.Product) error
	// UpdateQuantity actualiza cantidad y último usuario de un producto existente.
	UpdateQuantity(ctx context.Context, name string, quantity decimal.Decimal, userID string) error
	// ListAll recorre todos los productos (dashboard).
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
