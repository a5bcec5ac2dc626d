package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance es el saldo materializado de un par (recurso, unidad de medida).
// Invariante: Quantity >= 0. Se crea con el primer delta positivo y nunca se borra
// por operaciones de documentos.
type Balance struct {
	ID              int64
	ResourceID      int64
	UnitOfMeasureID int64
	Quantity        decimal.Decimal
	UpdatedAt       time.Time

	// Nombres resueltos para lectura (no se persisten).
	ResourceName string
	UnitName     string
}

// IsValidQuantity verifica la invariante de no negatividad.
func (b *Balance) IsValidQuantity() bool {
	return !b.Quantity.IsNegative()
}
