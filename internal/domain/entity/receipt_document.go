package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptDocument documento de ingreso de mercancía a la bodega.
// Puede no tener líneas; mientras exista, sus líneas suman al saldo.
type ReceiptDocument struct {
	ID        int64
	Number    string
	Date      time.Time
	Status    EntityStatus
	Resources []ReceiptResource
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidNumber verifica que el número no esté vacío.
func (d *ReceiptDocument) IsValidNumber() bool {
	return strings.TrimSpace(d.Number) != ""
}

// IsValidDate la fecha debe estar definida y no ser posterior a now.
func (d *ReceiptDocument) IsValidDate(now time.Time) bool {
	return !d.Date.IsZero() && !d.Date.After(now)
}

// AddResource agrega una línea al documento.
func (d *ReceiptDocument) AddResource(resourceID, unitID int64, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errInvalidLineQuantity()
	}
	d.Resources = append(d.Resources, ReceiptResource{
		ResourceLine: ResourceLine{
			ResourceID:      resourceID,
			UnitOfMeasureID: unitID,
			Quantity:        quantity,
		},
		ReceiptDocumentID: d.ID,
	})
	return nil
}

// RemoveResource elimina la línea con el ID indicado (si existe).
func (d *ReceiptDocument) RemoveResource(lineID int64) {
	kept := d.Resources[:0]
	for _, r := range d.Resources {
		if r.ID != lineID {
			kept = append(kept, r)
		}
	}
	d.Resources = kept
}

// ClearResources descarta todas las líneas (antes de reemplazarlas en una edición).
func (d *ReceiptDocument) ClearResources() {
	d.Resources = nil
}
