package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo bitácora de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos son inmutables.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Asigna ID si viene vacío.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, user_id, date, movement_type, product_name, quantity, unit_price, total_value, expiry_date, supplier, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.Date, m.MovementType, m.ProductName,
		m.Quantity, m.UnitPrice, m.TotalValue, m.ExpiryDate, m.Supplier, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
// El desempate por created_at da orden estable entre movimientos del mismo día.
func (r *MovementRepo) ListByProduct(ctx context.Context, productName string) ([]*entity.Movement, error) {
	query := `
		SELECT id, user_id, date, movement_type, product_name, quantity, unit_price, total_value, expiry_date, supplier, notes, created_at
		FROM movements WHERE product_name = $1
		ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, productName)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.MovementType, &m.ProductName,
			&m.Quantity, &m.UnitPrice, &m.TotalValue, &m.ExpiryDate, &m.Supplier, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
