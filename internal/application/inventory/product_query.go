package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// ProductQueryUseCase es el lado de lectura del motor de reconciliación:
// funciones puras del estado actual del almacén, sin caché entre peticiones.
// El total en stock sale del documento Product (vista materializada); el
// precio promedio y el historial de caducidades se recalculan desde la
// bitácora completa en cada consulta.
type ProductQueryUseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewProductQueryUseCase construye el caso de uso de lectura.
func NewProductQueryUseCase(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	log *logger.Logger,
) *ProductQueryUseCase {
	return &ProductQueryUseCase{products: products, movements: movements, log: log}
}

// DashboardSummary recorre todos los productos y emite el resumen del
// dashboard. Un documento sin productName, quantity o lastUpdatedBy se trata
// como corrupto/incompleto: se registra y se omite, no se expone al cliente.
func (uc *ProductQueryUseCase) DashboardSummary(ctx context.Context) ([]dto.DashboardItem, error) {
	all, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar productos: %w", err)
	}

	items := make([]dto.DashboardItem, 0, len(all))
	for _, p := range all {
		if p.Name == "" || p.Quantity == nil || p.LastUpdatedBy == nil {
			uc.log.Warn().
				Str("product", p.Name).
				Msg("documento de producto incompleto; se omite del dashboard")
			continue
		}
		items = append(items, dto.DashboardItem{
			ProductName:   p.Name,
			Quantity:      *p.Quantity,
			NearestExpiry: p.NearestExpiry,
			LastUpdatedBy: *p.LastUpdatedBy,
		})
	}
	return items, nil
}

// ProductDetail arma el detalle de un producto: stock actual del documento
// Product, movimientos ordenados por fecha descendente y, sobre los loads de
// la bitácora, el precio unitario promedio ponderado y el historial de
// caducidades distintas (ascendente).
//
// Promedio ponderado: sum(unitPrice*quantity) / sum(quantity) sobre los loads
// con unitPrice > 0; los loads sin precio (o con precio cero) no aportan ni al
// numerador ni al denominador. 0 si no hay loads con precio. Redondeado a 2
// decimales.
func (uc *ProductQueryUseCase) ProductDetail(ctx context.Context, name string) (*dto.ProductDetail, error) {
	product, err := uc.products.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("detalle: obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	movements, err := uc.movements.ListByProduct(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("detalle: listar movimientos: %w", err)
	}

	items := make([]dto.MovementItem, 0, len(movements))
	loadValue := decimal.Zero
	loadQuantity := decimal.Zero
	expirySet := make(map[string]struct{})

	for _, m := range movements {
		items = append(items, toMovementItem(m))

		if !m.IsLoad() {
			continue
		}
		if m.UnitPrice != nil && m.UnitPrice.IsPositive() && m.Quantity.IsPositive() {
			loadValue = loadValue.Add(m.UnitPrice.Mul(m.Quantity))
			loadQuantity = loadQuantity.Add(m.Quantity)
		}
		if m.ExpiryDate != nil && *m.ExpiryDate != "" {
			expirySet[*m.ExpiryDate] = struct{}{}
		}
	}

	average := decimal.Zero
	if loadQuantity.IsPositive() {
		average = loadValue.Div(loadQuantity).Round(2)
	}

	history := make([]string, 0, len(expirySet))
	for d := range expirySet {
		history = append(history, d)
	}
	sort.Strings(history)

	return &dto.ProductDetail{
		ProductName:           name,
		TotalQuantityInStock:  product.CurrentQuantity(),
		AverageUnitPrice:      average,
		ExpirationDateHistory: history,
		Movements:             items,
	}, nil
}

// toMovementItem convierte el timestamp nativo del almacén a texto portable
// (RFC 3339) o null si falta, y adjunta el identificador del movimiento.
func toMovementItem(m *entity.Movement) dto.MovementItem {
	var createdAt *string
	if !m.CreatedAt.IsZero() {
		s := m.CreatedAt.Format(time.RFC3339)
		createdAt = &s
	}
	return dto.MovementItem{
		MovementID:   m.ID,
		UserID:       m.UserID,
		Date:         m.Date,
		MovementType: m.MovementType,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalValue:   m.TotalValue,
		ExpiryDate:   m.ExpiryDate,
		Supplier:     m.Supplier,
		Notes:        m.Notes,
		CreatedAt:    createdAt,
	}
}
