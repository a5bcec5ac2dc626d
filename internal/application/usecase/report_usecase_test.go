package usecase_test

import (
	"bytes"
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
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type fakeRenderer struct {
	balanceItems int
}

func (f *fakeRenderer) RenderReceipt(_ context.Context, doc *dto.ReceiptResponse) ([]byte, error) {
	return []byte("receipt:" + doc.Number), nil
}

func (f *fakeRenderer) RenderShipment(_ context.Context, doc *dto.ShipmentResponse) ([]byte, error) {
	return []byte("shipment:" + doc.Number), nil
}

func (f *fakeRenderer) RenderBalance(_ context.Context, items []dto.BalanceResponse, _ time.Time) ([]byte, error) {
	f.balanceItems = len(items)
	return []byte("balance"), nil
}

type fakeExporter struct{ err error }

func (f fakeExporter) ExportBalance(_ context.Context, items []dto.BalanceResponse, _ time.Time) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	var buf bytes.Buffer
	for _, it := range items {
		buf.WriteString(it.ResourceName + "=" + it.Quantity.String() + ";")
	}
	return buf.Bytes(), nil
}

func newReportFixture(t *testing.T, exporter usecase.BalanceExporter) (*usecase.ReportUseCase, *fakeRenderer, int64) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()
	ctx := context.Background()

	res, err := usecase.NewResourceUseCase(repos.Resources, log).Create(ctx, dto.CreateResourceRequest{Name: "Cemento"})
	require.NoError(t, err)
	unit, err := usecase.NewUnitUseCase(repos.Units, log).Create(ctx, dto.CreateUnitRequest{Name: "Saco"})
	require.NoError(t, err)
	receipts := inventory.NewReceiptUseCase(store, log)
	doc, err := receipts.Create(ctx, dto.ReceiptRequest{
		Number: "IN-7", Date: time.Now().Add(-time.Hour),
		Resources: []dto.DocumentLineRequest{{ResourceID: res.ID, UnitOfMeasureID: unit.ID, Quantity: decimal.NewFromFloat(1.5)}},
	})
	require.NoError(t, err)

	renderer := &fakeRenderer{}
	uc := usecase.NewReportUseCase(receipts, inventory.NewShipmentUseCase(store, log),
		usecase.NewBalanceUseCase(repos.Balances), renderer, exporter)
	return uc, renderer, doc.ID
}

func TestReportUseCase_PDFIngreso(t *testing.T) {
	uc, _, id := newReportFixture(t, fakeExporter{})
	ctx := context.Background()

	out, name, err := uc.ReceiptPDF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "receipt:IN-7", string(out))
	assert.Equal(t, "ingreso_IN-7.pdf", name)

	_, _, err = uc.ShipmentPDF(ctx, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReportUseCase_Saldo(t *testing.T) {
	uc, renderer, _ := newReportFixture(t, fakeExporter{})
	ctx := context.Background()

	_, err := uc.BalancePDF(ctx, repository.BalanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.balanceItems)

	out, err := uc.BalanceXML(ctx, repository.BalanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Cemento=1.5;", string(out))

	_, err = uc.BalancePDF(ctx, repository.BalanceFilter{UnitIDs: []int64{999}})
	require.NoError(t, err)
	assert.Equal(t, 0, renderer.balanceItems)
}

func TestReportUseCase_ErrorAlExportar(t *testing.T) {
	uc, _, _ := newReportFixture(t, fakeExporter{err: errors.New("boom")})

	_, err := uc.BalanceXML(context.Background(), repository.BalanceFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exportar saldo")
}
