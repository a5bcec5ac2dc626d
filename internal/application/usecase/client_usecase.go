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

const clientEntity = "cliente"

// ClientUseCase casos de uso del catálogo de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, log: log}
}

// Create crea un cliente activo con nombre único.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	now := time.Now()
	client := &entity.Client{
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !client.IsValidName() {
		return nil, domain.BusinessRule("el nombre del cliente no puede estar vacío")
	}
	if err := checkUniqueName(ctx, uc.repo.ExistsByName, clientEntity, client.Name, 0); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("client_id", client.ID).Str("name", client.Name).Msg("cliente creado")
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes por nombre.
func (uc *ClientUseCase) List(ctx context.Context, includeArchived bool) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

// Update actualiza nombre y dirección.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	client.Name = strings.TrimSpace(in.Name)
	client.Address = strings.TrimSpace(in.Address)
	if !client.IsValidName() {
		return nil, domain.BusinessRule("el nombre del cliente no puede estar vacío")
	}
	if err := checkUniqueName(ctx, uc.repo.ExistsByName, clientEntity, client.Name, id); err != nil {
		return nil, err
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Archive archiva el cliente: no se le pueden emitir despachos nuevos.
func (uc *ClientUseCase) Archive(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	return uc.setStatus(ctx, id, entity.StatusArchived)
}

// Restore reactiva un cliente archivado.
func (uc *ClientUseCase) Restore(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	return uc.setStatus(ctx, id, entity.StatusActive)
}

// Delete elimina el cliente si no tiene despachos.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.IsInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.EntityInUse(clientEntity, id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("client_id", id).Msg("cliente eliminado")
	return nil
}

func (uc *ClientUseCase) setStatus(ctx context.Context, id int64, status entity.EntityStatus) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.Status == status {
		return nil, errSameStatus(clientEntity, id, status)
	}
	client.Status = status
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("client_id", id).Str("status", string(status)).Msg("estado de cliente cambiado")
	return toClientResponse(client), nil
}

func (uc *ClientUseCase) get(ctx context.Context, id int64) (*entity.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NotFound(clientEntity, id)
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
