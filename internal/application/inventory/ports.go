package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Resources repository.ResourceRepository
	Units     repository.UnitOfMeasureRepository
	Clients   repository.ClientRepository
	Balances  repository.BalanceRepository
	Receipts  repository.ReceiptDocumentRepository
	Shipments repository.ShipmentDocumentRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
