// Package excel genera el libro XLSX con la bitácora de movimientos de un
// producto, para que administración lo revise fuera del sistema.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/xuri/excelize/v2"
)

// MovementsWorkbook arma el XLSX del detalle de producto: una fila de resumen
// y una fila por movimiento, más recientes primero (el mismo orden que el API).
func MovementsWorkbook(detail *dto.ProductDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	summary := []interface{}{
		"producto", detail.ProductName,
		"stock actual", detail.TotalQuantityInStock.String(),
		"precio promedio", detail.AverageUnitPrice.String(),
	}
	if err := f.SetSheetRow(sheet, "A1", &summary); err != nil {
		return nil, fmt.Errorf("excel: fila de resumen: %w", err)
	}

	header := []interface{}{
		"fecha",
		"tipo",
		"cantidad",
		"precio unitario",
		"valor total",
		"caducidad",
		"proveedor",
		"notas",
		"usuario",
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	row := 4
	for _, m := range detail.Movements {
		excelRow := []interface{}{
			m.Date,
			m.MovementType,
			m.Quantity.String(),
			decimalOrEmpty(m.UnitPrice),
			m.TotalValue.String(),
			stringOrEmpty(m.ExpiryDate),
			stringOrEmpty(m.Supplier),
			stringOrEmpty(m.Notes),
			m.UserID,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: celda fila %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
