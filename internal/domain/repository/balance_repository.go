package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// BalanceRepository define el puerto para consultar/actualizar el saldo por (recurso, unidad).
// Get y GetForUpdate devuelven (nil, nil) si la fila no existe: la ausencia equivale a saldo cero.
type BalanceRepository interface {
	Get(ctx context.Context, resourceID, unitID int64) (*entity.Balance, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, resourceID, unitID int64) (*entity.Balance, error)
	Create(ctx context.Context, balance *entity.Balance) error
	Update(ctx context.Context, balance *entity.Balance) error
	List(ctx context.Context, filter BalanceFilter) ([]*entity.Balance, error)
}
