package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentDocument documento de despacho de mercancía a un cliente.
// Solo un despacho aprobado ha descontado existencias del saldo.
type ShipmentDocument struct {
	ID             int64
	Number         string
	ClientID       int64
	Date           time.Time
	DocumentStatus DocumentStatus
	Status         EntityStatus
	Resources      []ShipmentResource
	CreatedAt      time.Time
	UpdatedAt      time.Time

	ClientName string
}

// IsValidNumber verifica que el número no esté vacío.
func (d *ShipmentDocument) IsValidNumber() bool {
	return strings.TrimSpace(d.Number) != ""
}

// IsValidDate la fecha debe estar definida y no ser posterior a now.
func (d *ShipmentDocument) IsValidDate(now time.Time) bool {
	return !d.Date.IsZero() && !d.Date.After(now)
}

// HasResources indica si el documento tiene al menos una línea.
func (d *ShipmentDocument) HasResources() bool {
	return len(d.Resources) > 0
}

// IsApproved indica si el documento está aprobado.
func (d *ShipmentDocument) IsApproved() bool {
	return d.DocumentStatus == DocumentStatusApproved
}

// CanBeApproved borrador con al menos una línea.
func (d *ShipmentDocument) CanBeApproved() bool {
	return d.DocumentStatus == DocumentStatusDraft && d.HasResources()
}

// CanBeRevoked solo un documento aprobado se puede revocar.
func (d *ShipmentDocument) CanBeRevoked() bool {
	return d.DocumentStatus == DocumentStatusApproved
}

// Approve pasa el documento de borrador a aprobado.
func (d *ShipmentDocument) Approve() error {
	if !d.CanBeApproved() {
		return errTransition("el documento de despacho no puede ser aprobado")
	}
	d.DocumentStatus = DocumentStatusApproved
	return nil
}

// Revoke devuelve un documento aprobado a borrador.
func (d *ShipmentDocument) Revoke() error {
	if !d.CanBeRevoked() {
		return errTransition("el documento de despacho no puede ser revocado")
	}
	d.DocumentStatus = DocumentStatusDraft
	return nil
}

// AddResource agrega una línea al documento.
func (d *ShipmentDocument) AddResource(resourceID, unitID int64, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errInvalidLineQuantity()
	}
	d.Resources = append(d.Resources, ShipmentResource{
		ResourceLine: ResourceLine{
			ResourceID:      resourceID,
			UnitOfMeasureID: unitID,
			Quantity:        quantity,
		},
		ShipmentDocumentID: d.ID,
	})
	return nil
}

// RemoveResource elimina la línea con el ID indicado (si existe).
func (d *ShipmentDocument) RemoveResource(lineID int64) {
	kept := d.Resources[:0]
	for _, r := range d.Resources {
		if r.ID != lineID {
			kept = append(kept, r)
		}
	}
	d.Resources = kept
}

// ClearResources descarta todas las líneas (antes de reemplazarlas en una edición).
func (d *ShipmentDocument) ClearResources() {
	d.Resources = nil
}
