package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DocumentRenderer genera la representación imprimible (PDF) de documentos y saldos.
type DocumentRenderer interface {
	RenderReceipt(ctx context.Context, doc *dto.ReceiptResponse) ([]byte, error)
	RenderShipment(ctx context.Context, doc *dto.ShipmentResponse) ([]byte, error)
	RenderBalance(ctx context.Context, items []dto.BalanceResponse, generatedAt time.Time) ([]byte, error)
}

// BalanceExporter serializa una foto del saldo para sistemas externos.
type BalanceExporter interface {
	ExportBalance(ctx context.Context, items []dto.BalanceResponse, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase descargas: PDF de ingreso, PDF de despacho (remisión), reporte y exportación del saldo.
type ReportUseCase struct {
	receipts  *inventory.ReceiptUseCase
	shipments *inventory.ShipmentUseCase
	balances  *BalanceUseCase
	renderer  DocumentRenderer
	exporter  BalanceExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	receipts *inventory.ReceiptUseCase,
	shipments *inventory.ShipmentUseCase,
	balances *BalanceUseCase,
	renderer DocumentRenderer,
	exporter BalanceExporter,
) *ReportUseCase {
	return &ReportUseCase{
		receipts:  receipts,
		shipments: shipments,
		balances:  balances,
		renderer:  renderer,
		exporter:  exporter,
	}
}

// ReceiptPDF devuelve el PDF del ingreso y el nombre de archivo sugerido.
func (uc *ReportUseCase) ReceiptPDF(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := uc.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.renderer.RenderReceipt(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf ingreso: %w", err)
	}
	return out, fmt.Sprintf("ingreso_%s.pdf", doc.Number), nil
}

// ShipmentPDF devuelve la remisión del despacho.
func (uc *ReportUseCase) ShipmentPDF(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := uc.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.renderer.RenderShipment(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf despacho: %w", err)
	}
	return out, fmt.Sprintf("despacho_%s.pdf", doc.Number), nil
}

// BalancePDF reporte imprimible del saldo filtrado.
func (uc *ReportUseCase) BalancePDF(ctx context.Context, filter repository.BalanceFilter) ([]byte, error) {
	items, err := uc.balances.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := uc.renderer.RenderBalance(ctx, items, time.Now())
	if err != nil {
		return nil, fmt.Errorf("pdf saldo: %w", err)
	}
	return out, nil
}

// BalanceXML exportación XML del saldo filtrado.
func (uc *ReportUseCase) BalanceXML(ctx context.Context, filter repository.BalanceFilter) ([]byte, error) {
	items, err := uc.balances.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := uc.exporter.ExportBalance(ctx, items, time.Now())
	if err != nil {
		return nil, fmt.Errorf("exportar saldo: %w", err)
	}
	return out, nil
}
