package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `name, quantity, nearest_expiry, last_updated_by, created_at`

// Get obtiene un producto por nombre. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) Get(ctx context.Context, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	return r.scanOne(ctx, query, name, "get product")
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
// La ausencia de fila no bloquea nada: producto nuevo.
func (r *ProductRepo) GetForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1 FOR UPDATE`
	return r.scanOne(ctx, query, name, "get product for update")
}

func (r *ProductRepo) scanOne(ctx context.Context, query, name, op string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, name).Scan(
		&p.Name, &p.Quantity, &p.NearestExpiry, &p.LastUpdatedBy, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// Upsert escritura con semántica merge-aditiva: crea el documento si no
// existe; si ya existe, p.Quantity se SUMA a la cantidad almacenada. La suma
// va en el SQL porque FOR UPDATE sobre una fila ausente no bloquea nada: dos
// primeras cargas concurrentes del mismo producto leen ambas nil y la segunda
// escritura pisaría a la primera si el conflicto fijara un valor absoluto.
// nearest_expiry conserva el valor almacenado cuando p.NearestExpiry viene
// nil; created_at no se toca en actualizaciones.
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, quantity, nearest_expiry, last_updated_by, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		ON CONFLICT (name) DO UPDATE SET
			quantity        = COALESCE(products.quantity, 0) + EXCLUDED.quantity,
			last_updated_by = EXCLUDED.last_updated_by,
			nearest_expiry  = COALESCE(EXCLUDED.nearest_expiry, products.nearest_expiry)`
	_, err := r.q.Exec(ctx, query, p.Name, p.Quantity, p.NearestExpiry, p.LastUpdatedBy, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza cantidad y último usuario de un producto existente
// (descargas; nearest_expiry queda intacto).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, name string, quantity decimal.Decimal, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, last_updated_by = $3 WHERE name = $1`,
		name, quantity, userID,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// ListAll recorre todos los productos (dashboard).
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Name, &p.Quantity, &p.NearestExpiry, &p.LastUpdatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
