package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

func TestReceipt_CrearSumaAlSaldo(t *testing.T) {
	e := newEnv(t)
	out := e.receipt(t, "IN-001", "10", "2.5")

	assert.NotZero(t, out.ID)
	require.Len(t, out.Resources, 2)
	assert.Equal(t, "Cemento", out.Resources[0].ResourceName)
	assert.Equal(t, "Saco", out.Resources[0].UnitName)
	assert.True(t, e.balance(t).Equal(dec("12.5")))
}

func TestReceipt_CrearSinLineas(t *testing.T) {
	e := newEnv(t)
	out := e.receipt(t, "IN-EMPTY")

	assert.Empty(t, out.Resources)
	assert.True(t, e.balance(t).IsZero())
}

func TestReceipt_CrearValidaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.receipt(t, "IN-001", "1")

	tests := []struct {
		name string
		req  dto.ReceiptRequest
		kind error
	}{
		{"número vacío", dto.ReceiptRequest{Number: "  ", Date: yesterday()}, domain.ErrBusinessRule},
		{"fecha futura", dto.ReceiptRequest{Number: "IN-F", Date: time.Now().Add(time.Hour)}, domain.ErrBusinessRule},
		{"número duplicado", dto.ReceiptRequest{Number: "in-001", Date: yesterday()}, domain.ErrDuplicateDocumentNumber},
		{"cantidad cero", dto.ReceiptRequest{Number: "IN-Z", Date: yesterday(), Resources: e.lines("0")}, domain.ErrBusinessRule},
		{"recurso inexistente", dto.ReceiptRequest{Number: "IN-R", Date: yesterday(), Resources: []dto.DocumentLineRequest{
			{ResourceID: 999, UnitOfMeasureID: e.unitID, Quantity: dec("1")},
		}}, domain.ErrBusinessRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.receipts.Create(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "obtenido: %v", err)
		})
	}
	assert.True(t, e.balance(t).Equal(dec("1")))
}

func TestReceipt_ActualizarReemplazaLineas(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := e.receipt(t, "IN-001", "10")

	out, err := e.receipts.Update(ctx, in.ID, dto.ReceiptRequest{
		Number: "IN-001", Date: yesterday(), Resources: e.lines("4"),
	})
	require.NoError(t, err)
	require.Len(t, out.Resources, 1)
	assert.True(t, out.Resources[0].Quantity.Equal(dec("4")))
	assert.True(t, e.balance(t).Equal(dec("4")))
}

func TestReceipt_ActualizarMismasLineasConservaSaldo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := e.receipt(t, "IN-001", "10", "5")

	out, err := e.receipts.Update(ctx, in.ID, dto.ReceiptRequest{
		Number: "IN-001", Date: yesterday(), Resources: e.lines("10", "5"),
	})
	require.NoError(t, err)
	assert.Len(t, out.Resources, 2)
	assert.True(t, e.balance(t).Equal(dec("15")))
}

func TestReceipt_ActualizarPorDebajoDeLoDespachadoFalla(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := e.receipt(t, "IN-001", "10")
	sh := e.shipment(t, "OUT-001", "8")
	_, err := e.shipments.Approve(ctx, sh.ID)
	require.NoError(t, err)

	_, err = e.receipts.Update(ctx, in.ID, dto.ReceiptRequest{
		Number: "IN-001", Date: yesterday(), Resources: e.lines("5"),
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))

	got, err := e.receipts.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.True(t, got.Resources[0].Quantity.Equal(dec("10")))
	assert.True(t, e.balance(t).Equal(dec("2")))
}

func TestReceipt_EliminarRevierteSaldo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.receipt(t, "IN-001", "3")
	in := e.receipt(t, "IN-002", "7")

	require.NoError(t, e.receipts.Delete(ctx, in.ID))
	assert.True(t, e.balance(t).Equal(dec("3")))

	_, err := e.receipts.GetByID(ctx, in.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReceipt_EliminarTrasDespachoAprobadoFalla(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	in := e.receipt(t, "IN-001", "10")
	sh := e.shipment(t, "OUT-001", "6")
	_, err := e.shipments.Approve(ctx, sh.ID)
	require.NoError(t, err)

	err = e.receipts.Delete(ctx, in.ID)
	var ibe *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &ibe)
	assert.True(t, ibe.Required.Equal(dec("10")))
	assert.True(t, ibe.Available.Equal(dec("4")))

	_, err = e.receipts.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(dec("4")))
}

func TestReceipt_NoEncontrado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.receipts.GetByID(ctx, 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(e.receipts.Delete(ctx, 42), domain.ErrNotFound))
	_, err = e.receipts.Update(ctx, 42, dto.ReceiptRequest{Number: "X", Date: yesterday()})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReceipt_ListarFiltroYOrden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, time.January, d, 15, 30, 0, 0, time.Local) }
	for _, r := range []struct {
		number string
		date   time.Time
	}{{"B", day(10)}, {"A", day(10)}, {"C", day(12)}, {"D", day(3)}} {
		_, err := e.receipts.Create(ctx, dto.ReceiptRequest{Number: r.number, Date: r.date, Resources: e.lines("1")})
		require.NoError(t, err)
	}

	all, err := e.receipts.List(ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	var numbers []string
	for _, d := range all {
		numbers = append(numbers, d.Number)
	}
	assert.Equal(t, []string{"C", "A", "B", "D"}, numbers)

	// La fecha hasta incluye el día completo.
	from, to := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local)
	ranged, err := e.receipts.List(ctx, repository.DocumentFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	byNumber, err := e.receipts.List(ctx, repository.DocumentFilter{Numbers: []string{" D ", "", "C"}})
	require.NoError(t, err)
	assert.Len(t, byNumber, 2)

	none, err := e.receipts.List(ctx, repository.DocumentFilter{ResourceIDs: []int64{e.resourceID}, UnitIDs: []int64{999}})
	require.NoError(t, err)
	assert.Empty(t, none)
}
