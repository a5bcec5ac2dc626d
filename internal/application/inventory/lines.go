package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// lineAdder AddResource de ReceiptDocument o ShipmentDocument.
type lineAdder func(resourceID, unitID int64, qty decimal.Decimal) error

// addLines valida cada línea contra el catálogo (recurso y unidad existentes y activos)
// y la agrega al documento en el orden recibido.
func addLines(ctx context.Context, repos Repos, lines []dto.DocumentLineRequest, add lineAdder) error {
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return domain.BusinessRule("la cantidad de cada recurso debe ser positiva")
		}
		res, err := repos.Resources.GetByID(ctx, l.ResourceID)
		if err != nil {
			return err
		}
		if res == nil || res.Status.IsArchived() {
			return domain.BusinessRule(fmt.Sprintf("el recurso con ID %d no existe o está archivado", l.ResourceID))
		}
		unit, err := repos.Units.GetByID(ctx, l.UnitOfMeasureID)
		if err != nil {
			return err
		}
		if unit == nil || unit.Status.IsArchived() {
			return domain.BusinessRule(fmt.Sprintf("la unidad de medida con ID %d no existe o está archivada", l.UnitOfMeasureID))
		}
		if err := add(l.ResourceID, l.UnitOfMeasureID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func toLineResponse(l entity.ResourceLine) dto.DocumentLineResponse {
	return dto.DocumentLineResponse{
		ID:              l.ID,
		ResourceID:      l.ResourceID,
		ResourceName:    l.ResourceName,
		UnitOfMeasureID: l.UnitOfMeasureID,
		UnitName:        l.UnitName,
		Quantity:        l.Quantity,
	}
}

func toReceiptResponse(d *entity.ReceiptDocument) *dto.ReceiptResponse {
	if d == nil {
		return nil
	}
	lines := make([]dto.DocumentLineResponse, 0, len(d.Resources))
	for _, r := range d.Resources {
		lines = append(lines, toLineResponse(r.ResourceLine))
	}
	return &dto.ReceiptResponse{
		ID:        d.ID,
		Number:    d.Number,
		Date:      d.Date,
		Status:    string(d.Status),
		Resources: lines,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toShipmentResponse(d *entity.ShipmentDocument) *dto.ShipmentResponse {
	if d == nil {
		return nil
	}
	lines := make([]dto.DocumentLineResponse, 0, len(d.Resources))
	for _, r := range d.Resources {
		lines = append(lines, toLineResponse(r.ResourceLine))
	}
	return &dto.ShipmentResponse{
		ID:             d.ID,
		Number:         d.Number,
		ClientID:       d.ClientID,
		ClientName:     d.ClientName,
		Date:           d.Date,
		DocumentStatus: string(d.DocumentStatus),
		Status:         string(d.Status),
		Resources:      lines,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
