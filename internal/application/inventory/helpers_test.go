package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type env struct {
	store     *memory.Store
	receipts  *inventory.ReceiptUseCase
	shipments *inventory.ShipmentUseCase

	resourceID int64
	unitID     int64
	clientID   int64
}

// newEnv crea un almacén con un recurso, una unidad y un cliente activos.
func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()

	res := &entity.Resource{Name: "Cemento", Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Resources.Create(ctx, res))
	unit := &entity.UnitOfMeasure{Name: "Saco", Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Units.Create(ctx, unit))
	client := &entity.Client{Name: "Obra Norte", Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Clients.Create(ctx, client))

	return &env{
		store:      store,
		receipts:   inventory.NewReceiptUseCase(store, logger.Nop()),
		shipments:  inventory.NewShipmentUseCase(store, logger.Nop()),
		resourceID: res.ID,
		unitID:     unit.ID,
		clientID:   client.ID,
	}
}

func (e *env) lines(qtys ...string) []dto.DocumentLineRequest {
	out := make([]dto.DocumentLineRequest, 0, len(qtys))
	for _, q := range qtys {
		out = append(out, dto.DocumentLineRequest{
			ResourceID:      e.resourceID,
			UnitOfMeasureID: e.unitID,
			Quantity:        decimal.RequireFromString(q),
		})
	}
	return out
}

func (e *env) receipt(t *testing.T, number string, qtys ...string) *dto.ReceiptResponse {
	t.Helper()
	out, err := e.receipts.Create(context.Background(), dto.ReceiptRequest{
		Number: number, Date: yesterday(), Resources: e.lines(qtys...),
	})
	require.NoError(t, err)
	return out
}

func (e *env) shipment(t *testing.T, number string, qtys ...string) *dto.ShipmentResponse {
	t.Helper()
	out, err := e.shipments.Create(context.Background(), dto.ShipmentRequest{
		Number: number, ClientID: e.clientID, Date: yesterday(), Resources: e.lines(qtys...),
	})
	require.NoError(t, err)
	return out
}

// balance saldo actual del par del entorno; cero si no hay fila.
func (e *env) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	b, err := e.store.Repos().Balances.Get(context.Background(), e.resourceID, e.unitID)
	require.NoError(t, err)
	if b == nil {
		return decimal.Zero
	}
	return b.Quantity
}

func yesterday() time.Time { return time.Now().Add(-24 * time.Hour) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
