package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type balanceKey struct{ resourceID, unitID int64 }

// fakeBalances repositorio de saldos en mapa; cuenta escrituras para verificar que un
// error no muta nada.
type fakeBalances struct {
	rows   map[balanceKey]*entity.Balance
	nextID int64
	writes int
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{rows: map[balanceKey]*entity.Balance{}}
}

func (f *fakeBalances) Get(_ context.Context, resourceID, unitID int64) (*entity.Balance, error) {
	b, ok := f.rows[balanceKey{resourceID, unitID}]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBalances) GetForUpdate(ctx context.Context, resourceID, unitID int64) (*entity.Balance, error) {
	return f.Get(ctx, resourceID, unitID)
}

func (f *fakeBalances) Create(_ context.Context, b *entity.Balance) error {
	f.nextID++
	f.writes++
	b.ID = f.nextID
	cp := *b
	f.rows[balanceKey{b.ResourceID, b.UnitOfMeasureID}] = &cp
	return nil
}

func (f *fakeBalances) Update(_ context.Context, b *entity.Balance) error {
	f.writes++
	cp := *b
	f.rows[balanceKey{b.ResourceID, b.UnitOfMeasureID}] = &cp
	return nil
}

func (f *fakeBalances) List(context.Context, repository.BalanceFilter) ([]*entity.Balance, error) {
	return nil, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(resourceID, unitID int64, qty string) entity.ResourceLine {
	return entity.ResourceLine{ResourceID: resourceID, UnitOfMeasureID: unitID, Quantity: dec(qty)}
}

func quantity(t *testing.T, svc *inventory.BalanceService, resourceID, unitID int64) decimal.Decimal {
	t.Helper()
	q, err := svc.GetCurrentBalance(context.Background(), resourceID, unitID)
	require.NoError(t, err)
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateBalance
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateBalance_CreaFilaConDeltaPositivo(t *testing.T) {
	repo := newFakeBalances()
	svc := inventory.NewBalanceService(repo)

	b, err := svc.UpdateBalance(context.Background(), 1, 1, dec("10"))
	require.NoError(t, err)
	assert.True(t, b.Quantity.Equal(dec("10")))
	assert.NotZero(t, b.ID)
	assert.Len(t, repo.rows, 1)
}

func TestUpdateBalance_SinFilaYDeltaNegativo_SaldoInsuficiente(t *testing.T) {
	repo := newFakeBalances()
	svc := inventory.NewBalanceService(repo)

	_, err := svc.UpdateBalance(context.Background(), 1, 1, dec("-3"))
	require.Error(t, err)

	var ib *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &ib))
	assert.True(t, ib.Required.Equal(dec("3")))
	assert.True(t, ib.Available.IsZero())
	assert.Zero(t, repo.writes, "un error no debe escribir")
}

func TestUpdateBalance_NoPermiteNegativo(t *testing.T) {
	repo := newFakeBalances()
	svc := inventory.NewBalanceService(repo)
	ctx := context.Background()

	_, err := svc.UpdateBalance(ctx, 1, 1, dec("5"))
	require.NoError(t, err)

	_, err = svc.UpdateBalance(ctx, 1, 1, dec("-7"))
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	var ib *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.True(t, ib.Required.Equal(dec("7")))
	assert.True(t, ib.Available.Equal(dec("5")))
	assert.True(t, quantity(t, svc, 1, 1).Equal(dec("5")), "el saldo no cambia tras el error")
}

func TestUpdateBalance_PuedeLlegarACero(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	ctx := context.Background()

	_, err := svc.UpdateBalance(ctx, 1, 1, dec("2.5"))
	require.NoError(t, err)
	b, err := svc.UpdateBalance(ctx, 1, 1, dec("-2.5"))
	require.NoError(t, err)
	assert.True(t, b.Quantity.IsZero())
}

func TestUpdateBalance_IdsInvalidos(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	ctx := context.Background()

	_, err := svc.UpdateBalance(ctx, 0, 1, dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = svc.UpdateBalance(ctx, 1, -1, dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateAvailability / GetCurrentBalance
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateAvailability(t *testing.T) {
	repo := newFakeBalances()
	svc := inventory.NewBalanceService(repo)
	ctx := context.Background()
	_, err := svc.UpdateBalance(ctx, 1, 2, dec("4"))
	require.NoError(t, err)
	writes := repo.writes

	assert.NoError(t, svc.ValidateAvailability(ctx, 1, 2, dec("4")))
	assert.NoError(t, svc.ValidateAvailability(ctx, 1, 2, decimal.Zero))
	assert.ErrorIs(t, svc.ValidateAvailability(ctx, 1, 2, dec("4.01")), domain.ErrInsufficientBalance)
	assert.ErrorIs(t, svc.ValidateAvailability(ctx, 9, 9, dec("1")), domain.ErrInsufficientBalance)
	assert.ErrorIs(t, svc.ValidateAvailability(ctx, 1, 2, dec("-1")), domain.ErrInvalidArgument)
	assert.Equal(t, writes, repo.writes, "validar no escribe")
}

func TestGetCurrentBalance_SinFilaEsCero(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	assert.True(t, quantity(t, svc, 3, 3).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessReceiptLines / ProcessShipmentLines
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessReceiptLines_VacioNoHaceNada(t *testing.T) {
	repo := newFakeBalances()
	svc := inventory.NewBalanceService(repo)

	require.NoError(t, svc.ProcessReceiptLines(context.Background(), nil, false))
	require.NoError(t, svc.ProcessReceiptLines(context.Background(), nil, true))
	assert.Zero(t, repo.writes)
}

func TestProcessReceiptLines_AplicarYRevertir(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	ctx := context.Background()
	lines := []entity.ResourceLine{line(1, 1, "10"), line(1, 2, "3"), line(1, 1, "5")}

	require.NoError(t, svc.ProcessReceiptLines(ctx, lines, false))
	assert.True(t, quantity(t, svc, 1, 1).Equal(dec("15")))
	assert.True(t, quantity(t, svc, 1, 2).Equal(dec("3")))

	require.NoError(t, svc.ProcessReceiptLines(ctx, lines, true))
	assert.True(t, quantity(t, svc, 1, 1).IsZero())
	assert.True(t, quantity(t, svc, 1, 2).IsZero())
}

func TestProcessReceiptLines_CantidadNoPositiva(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	err := svc.ProcessReceiptLines(context.Background(), []entity.ResourceLine{line(1, 1, "0")}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestProcessShipmentLines_VacioEsInvalido(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	err := svc.ProcessShipmentLines(context.Background(), []entity.ResourceLine{}, true)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// Escenario: ingreso de 10, despacho aprobado de 4, revocación, y despacho que excede.
func TestProcessShipmentLines_AprobarYRevocar(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	ctx := context.Background()
	require.NoError(t, svc.ProcessReceiptLines(ctx, []entity.ResourceLine{line(1, 1, "10")}, false))

	shipment := []entity.ResourceLine{line(1, 1, "4")}
	require.NoError(t, svc.ProcessShipmentLines(ctx, shipment, true))
	assert.True(t, quantity(t, svc, 1, 1).Equal(dec("6")))

	require.NoError(t, svc.ProcessShipmentLines(ctx, shipment, false))
	assert.True(t, quantity(t, svc, 1, 1).Equal(dec("10")), "revocar es el inverso exacto de aprobar")

	err := svc.ProcessShipmentLines(ctx, []entity.ResourceLine{line(1, 1, "11")}, true)
	var ib *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.True(t, ib.Required.Equal(dec("11")))
	assert.True(t, ib.Available.Equal(dec("10")))
}

// Escenario: revertir un ingreso cuya mercancía ya salió falla con saldo insuficiente.
func TestProcessReceiptLines_ReversionTrasDespacho(t *testing.T) {
	svc := inventory.NewBalanceService(newFakeBalances())
	ctx := context.Background()
	receipt := []entity.ResourceLine{line(1, 1, "10")}
	require.NoError(t, svc.ProcessReceiptLines(ctx, receipt, false))
	require.NoError(t, svc.ProcessShipmentLines(ctx, []entity.ResourceLine{line(1, 1, "8")}, true))

	err := svc.ProcessReceiptLines(ctx, receipt, true)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, quantity(t, svc, 1, 1).Equal(dec("2")))
}
