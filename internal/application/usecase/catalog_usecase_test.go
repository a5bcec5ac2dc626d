package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func TestResourceUseCase_CrearYDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewResourceUseCase(store.Repos().Resources, logger.Nop())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateResourceRequest{Name: "  Cemento "})
	require.NoError(t, err)
	assert.Equal(t, "Cemento", out.Name)
	assert.Equal(t, "active", out.Status)

	_, err = uc.Create(ctx, dto.CreateResourceRequest{Name: "CEMENTO"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = uc.Create(ctx, dto.CreateResourceRequest{Name: "   "})
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))
}

func TestResourceUseCase_ActualizarConservaNombrePropio(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewResourceUseCase(store.Repos().Resources, logger.Nop())
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateResourceRequest{Name: "Arena"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateResourceRequest{Name: "Grava"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, a.ID, dto.UpdateResourceRequest{Name: "arena"})
	require.NoError(t, err)
	assert.Equal(t, "arena", out.Name)

	_, err = uc.Update(ctx, a.ID, dto.UpdateResourceRequest{Name: "Grava"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = uc.Update(ctx, 99, dto.UpdateResourceRequest{Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResourceUseCase_ArchivarRestaurarListar(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewResourceUseCase(store.Repos().Resources, logger.Nop())
	ctx := context.Background()
	b, err := uc.Create(ctx, dto.CreateResourceRequest{Name: "b"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateResourceRequest{Name: "A"})
	require.NoError(t, err)

	_, err = uc.Archive(ctx, b.ID)
	require.NoError(t, err)
	_, err = uc.Archive(ctx, b.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidEntityStatus))

	active, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "A", active[0].Name)

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"A", "b"}, []string{all[0].Name, all[1].Name})

	out, err := uc.Restore(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)
	_, err = uc.Restore(ctx, b.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidEntityStatus))
}

func TestCatalog_EliminarEnUso(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()
	resources := usecase.NewResourceUseCase(repos.Resources, log)
	units := usecase.NewUnitUseCase(repos.Units, log)
	clients := usecase.NewClientUseCase(repos.Clients, log)
	receipts := inventory.NewReceiptUseCase(store, log)
	shipments := inventory.NewShipmentUseCase(store, log)
	ctx := context.Background()

	res, err := resources.Create(ctx, dto.CreateResourceRequest{Name: "Cemento"})
	require.NoError(t, err)
	unit, err := units.Create(ctx, dto.CreateUnitRequest{Name: "Saco"})
	require.NoError(t, err)
	client, err := clients.Create(ctx, dto.CreateClientRequest{Name: "Obra", Address: "Calle 5"})
	require.NoError(t, err)
	spare, err := clients.Create(ctx, dto.CreateClientRequest{Name: "Sin despachos"})
	require.NoError(t, err)

	lines := []dto.DocumentLineRequest{{ResourceID: res.ID, UnitOfMeasureID: unit.ID, Quantity: decimal.NewFromInt(5)}}
	date := time.Now().Add(-time.Hour)
	_, err = receipts.Create(ctx, dto.ReceiptRequest{Number: "IN-1", Date: date, Resources: lines})
	require.NoError(t, err)
	_, err = shipments.Create(ctx, dto.ShipmentRequest{Number: "OUT-1", ClientID: client.ID, Date: date, Resources: lines})
	require.NoError(t, err)

	assert.True(t, errors.Is(resources.Delete(ctx, res.ID), domain.ErrEntityInUse))
	assert.True(t, errors.Is(units.Delete(ctx, unit.ID), domain.ErrEntityInUse))
	assert.True(t, errors.Is(clients.Delete(ctx, client.ID), domain.ErrEntityInUse))

	require.NoError(t, clients.Delete(ctx, spare.ID))
	_, err = clients.GetByID(ctx, spare.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Archivado sigue resolviéndose por ID y en documentos existentes.
	_, err = resources.Archive(ctx, res.ID)
	require.NoError(t, err)
	got, err := resources.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", got.Status)

	_, err = receipts.Create(ctx, dto.ReceiptRequest{Number: "IN-2", Date: date, Resources: lines})
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))
}

func TestClientUseCase_ActualizarDireccion(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewClientUseCase(store.Repos().Clients, logger.Nop())
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Obra", Address: "Calle 5"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, c.ID, dto.UpdateClientRequest{Name: "Obra", Address: " Carrera 7 "})
	require.NoError(t, err)
	assert.Equal(t, "Carrera 7", out.Address)
}
