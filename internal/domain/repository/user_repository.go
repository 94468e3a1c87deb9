package repository

import (
	"context"

	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
)

// UserRepository puerto de persistencia de cuentas del proveedor de identidad.
type UserRepository interface {
	// Create persiste un usuario nuevo. Devuelve domain.ErrEmailAlreadyExists
	// si el email ya está registrado.
	Create(ctx context.Context, u *entity.User) error
	// GetByEmail devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
