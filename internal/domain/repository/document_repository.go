package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ReceiptDocumentRepository define el puerto de persistencia para documentos de ingreso.
type ReceiptDocumentRepository interface {
	// Create inserta cabecera y líneas y asigna los IDs generados.
	Create(ctx context.Context, doc *entity.ReceiptDocument) error
	// GetWithResources devuelve el documento con sus líneas, o (nil, nil) si no existe.
	GetWithResources(ctx context.Context, id int64) (*entity.ReceiptDocument, error)
	// Update actualiza la cabecera y reemplaza todas las líneas.
	Update(ctx context.Context, doc *entity.ReceiptDocument) error
	Delete(ctx context.Context, id int64) error
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	List(ctx context.Context, filter DocumentFilter) ([]*entity.ReceiptDocument, error)
}

// ShipmentDocumentRepository define el puerto de persistencia para documentos de despacho.
type ShipmentDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ShipmentDocument) error
	// GetWithResources devuelve el documento con líneas y nombre del cliente, o (nil, nil).
	GetWithResources(ctx context.Context, id int64) (*entity.ShipmentDocument, error)
	Update(ctx context.Context, doc *entity.ShipmentDocument) error
	Delete(ctx context.Context, id int64) error
	ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error)
	List(ctx context.Context, filter DocumentFilter) ([]*entity.ShipmentDocument, error)
}
