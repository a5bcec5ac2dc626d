package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const unitEntity = "unidad de medida"

// UnitUseCase casos de uso del catálogo de unidades de medida.
type UnitUseCase struct {
	repo repository.UnitOfMeasureRepository
	log  *logger.Logger
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitOfMeasureRepository, log *logger.Logger) *UnitUseCase {
	return &UnitUseCase{repo: repo, log: log}
}

// Create crea una unidad de medida activa con nombre único.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	now := time.Now()
	unit := &entity.UnitOfMeasure{
		Name:      strings.TrimSpace(in.Name),
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !unit.IsValidName() {
		return nil, domain.BusinessRule("el nombre de la unidad de medida no puede estar vacío")
	}
	if err := checkUniqueName(ctx, uc.repo.ExistsByName, unitEntity, unit.Name, 0); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("unit_id", unit.ID).Str("name", unit.Name).Msg("unidad de medida creada")
	return toUnitResponse(unit), nil
}

// GetByID obtiene una unidad de medida por ID.
func (uc *UnitUseCase) GetByID(ctx context.Context, id int64) (*dto.UnitResponse, error) {
	unit, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// List lista unidades de medida por nombre.
func (uc *UnitUseCase) List(ctx context.Context, includeArchived bool) ([]dto.UnitResponse, error) {
	list, err := uc.repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return items, nil
}

// Update renombra una unidad de medida.
func (uc *UnitUseCase) Update(ctx context.Context, id int64, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	unit.Name = strings.TrimSpace(in.Name)
	if !unit.IsValidName() {
		return nil, domain.BusinessRule("el nombre de la unidad de medida no puede estar vacío")
	}
	if err := checkUniqueName(ctx, uc.repo.ExistsByName, unitEntity, unit.Name, id); err != nil {
		return nil, err
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// Archive archiva la unidad de medida.
func (uc *UnitUseCase) Archive(ctx context.Context, id int64) (*dto.UnitResponse, error) {
	return uc.setStatus(ctx, id, entity.StatusArchived)
}

// Restore reactiva una unidad de medida archivada.
func (uc *UnitUseCase) Restore(ctx context.Context, id int64) (*dto.UnitResponse, error) {
	return uc.setStatus(ctx, id, entity.StatusActive)
}

// Delete elimina la unidad si no la usa ningún documento ni saldo.
func (uc *UnitUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.EntityInUse(unitEntity, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("unit_id", id).Msg("unidad de medida eliminada")
	return nil
}

func (uc *UnitUseCase) setStatus(ctx context.Context, id int64, status entity.EntityStatus) (*dto.UnitResponse, error) {
	unit, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit.Status == status {
		return nil, errSameStatus(unitEntity, id, status)
	}
	unit.Status = status
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("unit_id", id).Str("status", string(status)).Msg("estado de unidad cambiado")
	return toUnitResponse(unit), nil
}

func (uc *UnitUseCase) get(ctx context.Context, id int64) (*entity.UnitOfMeasure, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.NotFound(unitEntity, id)
	}
	return unit, nil
}

func toUnitResponse(u *entity.UnitOfMeasure) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
