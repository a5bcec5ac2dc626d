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

const resourceEntity = "recurso"

// ResourceUseCase casos de uso del catálogo de recursos.
type ResourceUseCase struct {
	repo repository.ResourceRepository
	log  *logger.Logger
}

// NewResourceUseCase construye el caso de uso.
func NewResourceUseCase(repo repository.ResourceRepository, log *logger.Logger) *ResourceUseCase {
	return &ResourceUseCase{repo: repo, log: log}
}

// Create crea un recurso activo con nombre único.
func (uc *ResourceUseCase) Create(ctx context.Context, in dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	now := time.Now()
	res := &entity.Resource{
		Name:      strings.TrimSpace(in.Name),
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !res.IsValidName() {
		return nil, domain.BusinessRule("el nombre del recurso no puede estar vacío")
	}
	if err := checkUniqueName(ctx, uc.repo.ExistsByName, resourceEntity, res.Name, 0); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("resource_id", res.ID).Str("name", res.Name).Msg("recurso creado")
	return toResourceResponse(res), nil
}

// GetByID obtiene un recurso por ID.
func (uc *ResourceUseCase) GetByID(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	res, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResourceResponse(res), nil
}

// List lista recursos por nombre; sin includeArchived solo los activos.
func (uc *ResourceUseCase) List(ctx context.Context, includeArchived bool) ([]dto.ResourceResponse, error) {
	list, err := uc.repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResourceResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toResourceResponse(r))
	}
	return items, nil
}

// Update renombra un recurso.
func (uc *ResourceUseCase) Update(ctx context.Context, id int64, in dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	res, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Name = strings.TrimSpace(in.Name)
	if !res.IsValidName() {
		return nil, domain.BusinessRule("el nombre del recurso no puede estar vacío")
	}
	if err := checkUniqueName(ctx, uc.repo.ExistsByName, resourceEntity, res.Name, id); err != nil {
		return nil, err
	}
	res.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return toResourceResponse(res), nil
}

// Archive marca el recurso como archivado: deja de poder usarse en documentos nuevos.
func (uc *ResourceUseCase) Archive(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	return uc.setStatus(ctx, id, entity.StatusArchived)
}

// Restore devuelve un recurso archivado a activo.
func (uc *ResourceUseCase) Restore(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	return uc.setStatus(ctx, id, entity.StatusActive)
}

// Delete elimina el recurso si nada lo referencia; si está en uso hay que archivarlo.
func (uc *ResourceUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.EntityInUse(resourceEntity, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("resource_id", id).Msg("recurso eliminado")
	return nil
}

func (uc *ResourceUseCase) setStatus(ctx context.Context, id int64, status entity.EntityStatus) (*dto.ResourceResponse, error) {
	res, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status == status {
		return nil, errSameStatus(resourceEntity, id, status)
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("resource_id", id).Str("status", string(status)).Msg("estado de recurso cambiado")
	return toResourceResponse(res), nil
}

func (uc *ResourceUseCase) get(ctx context.Context, id int64) (*entity.Resource, error) {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.NotFound(resourceEntity, id)
	}
	return res, nil
}

func toResourceResponse(r *entity.Resource) *dto.ResourceResponse {
	return &dto.ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
