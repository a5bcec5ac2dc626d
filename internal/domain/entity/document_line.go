package entity

import "github.com/shopspring/decimal"

// ResourceLine es la forma común de una línea de documento: recurso, unidad y cantidad.
type ResourceLine struct {
	ID              int64
	ResourceID      int64
	UnitOfMeasureID int64
	Quantity        decimal.Decimal

	ResourceName string
	UnitName     string
}

// IsValidQuantity la cantidad de una línea debe ser estrictamente positiva.
func (l *ResourceLine) IsValidQuantity() bool {
	return l.Quantity.IsPositive()
}

// ReceiptResource línea de un documento de ingreso.
type ReceiptResource struct {
	ResourceLine
	ReceiptDocumentID int64
}

// ShipmentResource línea de un documento de despacho.
type ShipmentResource struct {
	ResourceLine
	ShipmentDocumentID int64
}
