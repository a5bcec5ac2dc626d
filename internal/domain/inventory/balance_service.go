package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// BalanceService es el motor de conciliación del saldo (servicio de dominio).
// Es la única vía por la que cambia una fila de saldo. No conoce el estado de los
// documentos: quien lo invoca decide si aplica, revierte, aprueba o revoca.
type BalanceService struct {
	balances repository.BalanceRepository
	now      func() time.Time
}

// NewBalanceService construye el motor sobre un repositorio de saldos (atado a la tx en curso).
func NewBalanceService(balances repository.BalanceRepository) *BalanceService {
	return &BalanceService{balances: balances, now: time.Now}
}

// UpdateBalance aplica un delta con signo al saldo (recurso, unidad).
// Si la fila no existe se trata como cero; si el resultado fuese negativo no muta nada.
func (s *BalanceService) UpdateBalance(ctx context.Context, resourceID, unitID int64, delta decimal.Decimal) (*entity.Balance, error) {
	if err := validateKey(resourceID, unitID); err != nil {
		return nil, err
	}
	current, err := s.balances.GetForUpdate(ctx, resourceID, unitID)
	if err != nil {
		return nil, fmt.Errorf("leer saldo: %w", err)
	}
	if current == nil {
		if delta.IsNegative() {
			return nil, domain.InsufficientBalance(resourceID, unitID, delta.Abs(), decimal.Zero)
		}
		b := &entity.Balance{
			ResourceID:      resourceID,
			UnitOfMeasureID: unitID,
			Quantity:        delta,
			UpdatedAt:       s.now(),
		}
		if err := s.balances.Create(ctx, b); err != nil {
			return nil, fmt.Errorf("crear saldo: %w", err)
		}
		return b, nil
	}

	next := current.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, domain.InsufficientBalance(resourceID, unitID, delta.Abs(), current.Quantity)
	}
	current.Quantity = next
	current.UpdatedAt = s.now()
	if err := s.balances.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("actualizar saldo: %w", err)
	}
	return current, nil
}

// ValidateAvailability comprueba, sin mutar, que haya al menos required disponible.
func (s *BalanceService) ValidateAvailability(ctx context.Context, resourceID, unitID int64, required decimal.Decimal) error {
	if err := validateKey(resourceID, unitID); err != nil {
		return err
	}
	if required.IsNegative() {
		return domain.InvalidArgument("la cantidad requerida no puede ser negativa")
	}
	available, err := s.GetCurrentBalance(ctx, resourceID, unitID)
	if err != nil {
		return err
	}
	if available.LessThan(required) {
		return domain.InsufficientBalance(resourceID, unitID, required, available)
	}
	return nil
}

// GetCurrentBalance devuelve la cantidad disponible; cero si no hay fila.
func (s *BalanceService) GetCurrentBalance(ctx context.Context, resourceID, unitID int64) (decimal.Decimal, error) {
	if err := validateKey(resourceID, unitID); err != nil {
		return decimal.Zero, err
	}
	b, err := s.balances.Get(ctx, resourceID, unitID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("leer saldo: %w", err)
	}
	if b == nil {
		return decimal.Zero, nil
	}
	return b.Quantity, nil
}

// ProcessReceiptLines suma las líneas de un ingreso (isReversal=false) o las resta (true).
// Un conjunto vacío no hace nada. La reversión puede fallar con saldo insuficiente
// si la mercancía ya salió.
func (s *BalanceService) ProcessReceiptLines(ctx context.Context, lines []entity.ResourceLine, isReversal bool) error {
	for _, l := range lines {
		if !l.IsValidQuantity() {
			return domain.InvalidArgument("la cantidad de cada línea debe ser positiva")
		}
		delta := l.Quantity
		if isReversal {
			delta = delta.Neg()
		}
		if _, err := s.UpdateBalance(ctx, l.ResourceID, l.UnitOfMeasureID, delta); err != nil {
			return err
		}
	}
	return nil
}

// ProcessShipmentLines resta las líneas de un despacho al aprobarlo (isApproval=true)
// o las devuelve al revocarlo. Un despacho nunca está vacío.
func (s *BalanceService) ProcessShipmentLines(ctx context.Context, lines []entity.ResourceLine, isApproval bool) error {
	if len(lines) == 0 {
		return domain.InvalidArgument("el despacho no puede estar vacío")
	}
	for _, l := range lines {
		if !l.IsValidQuantity() {
			return domain.InvalidArgument("la cantidad de cada línea debe ser positiva")
		}
		if !isApproval {
			if _, err := s.UpdateBalance(ctx, l.ResourceID, l.UnitOfMeasureID, l.Quantity); err != nil {
				return err
			}
			continue
		}
		if err := s.ValidateAvailability(ctx, l.ResourceID, l.UnitOfMeasureID, l.Quantity); err != nil {
			return err
		}
		if _, err := s.UpdateBalance(ctx, l.ResourceID, l.UnitOfMeasureID, l.Quantity.Neg()); err != nil {
			return err
		}
	}
	return nil
}

func validateKey(resourceID, unitID int64) error {
	if resourceID <= 0 {
		return domain.InvalidArgument("id de recurso inválido")
	}
	if unitID <= 0 {
		return domain.InvalidArgument("id de unidad de medida inválido")
	}
	return nil
}
