package dto

import "github.com/shopspring/decimal"

// DashboardItem resumen por producto para GET /dashboard-data.
type DashboardItem struct {
	ProductName   string          `json:"productName"`
	Quantity      decimal.Decimal `json:"quantity"`
	NearestExpiry *string         `json:"nearestExpiry"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// MovementItem un movimiento dentro del detalle de producto.
// CreatedAt viaja como texto RFC 3339 (o null si el documento no lo trae).
type MovementItem struct {
	MovementID   string           `json:"movementId"`
	UserID       string           `json:"userId"`
	Date         string           `json:"date"`
	MovementType string           `json:"movementType"`
	ProductName  string           `json:"productName"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	ExpiryDate   *string          `json:"expiryDate"`
	Supplier     *string          `json:"supplier"`
	Notes        *string          `json:"notes"`
	CreatedAt    *string          `json:"createdAt"`
}

// ProductDetail respuesta de GET /products/{name}.
// TotalQuantityInStock sale del documento Product (total transaccional);
// AverageUnitPrice y ExpirationDateHistory se derivan de la bitácora. Son dos
// derivaciones independientes a propósito: pueden divergir si alguna vez se
// desincronizan el total y la bitácora.
type ProductDetail struct {
	ProductName           string          `json:"productName"`
	TotalQuantityInStock  decimal.Decimal `json:"totalQuantityInStock"`
	AverageUnitPrice      decimal.Decimal `json:"averageUnitPrice"`
	ExpirationDateHistory []string        `json:"expirationDateHistory"`
	Movements             []MovementItem  `json:"movements"`
}

// CreateMovementResponse respuesta de POST /movements.
type CreateMovementResponse struct {
	Message    string `json:"message"`
	MovementID string `json:"movementId"`
}
