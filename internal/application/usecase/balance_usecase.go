package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// BalanceUseCase consulta del saldo actual. El saldo solo cambia a través de los documentos.
type BalanceUseCase struct {
	repo repository.BalanceRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(repo repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{repo: repo}
}

// List devuelve los saldos filtrados por recurso y unidad, ordenados por nombre de recurso y de unidad.
func (uc *BalanceUseCase) List(ctx context.Context, filter repository.BalanceFilter) ([]dto.BalanceResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBalanceResponse(b))
	}
	return items, nil
}

func toBalanceResponse(b *entity.Balance) dto.BalanceResponse {
	return dto.BalanceResponse{
		ID:              b.ID,
		ResourceID:      b.ResourceID,
		ResourceName:    b.ResourceName,
		UnitOfMeasureID: b.UnitOfMeasureID,
		UnitName:        b.UnitName,
		Quantity:        b.Quantity,
		UpdatedAt:       b.UpdatedAt,
	}
}
