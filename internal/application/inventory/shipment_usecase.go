package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const shipmentEntity = "documento de despacho"

// ShipmentUseCase ciclo de vida de los despachos: borrador -> aprobado -> borrador.
// Solo la aprobación descuenta del saldo; la revocación lo devuelve.
type ShipmentUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(txRunner TxRunner, log *logger.Logger) *ShipmentUseCase {
	return &ShipmentUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// Create registra el despacho como borrador (sin efecto en el saldo). Con in.Approve se
// aprueba en la misma transacción.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.ShipmentRequest) (*dto.ShipmentResponse, error) {
	var out *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		now := uc.now()
		doc := &entity.ShipmentDocument{
			Number:         strings.TrimSpace(in.Number),
			ClientID:       in.ClientID,
			Date:           in.Date,
			DocumentStatus: entity.DocumentStatusDraft,
			Status:         entity.StatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.checkHeader(ctx, repos, doc, 0, now); err != nil {
			return err
		}
		if len(in.Resources) == 0 {
			return domain.BusinessRule("el documento de despacho no puede estar vacío")
		}
		if err := addLines(ctx, repos, in.Resources, doc.AddResource); err != nil {
			return err
		}
		if in.Approve {
			if err := approve(ctx, repos, doc); err != nil {
				return err
			}
		}
		if err := repos.Shipments.Create(ctx, doc); err != nil {
			return err
		}
		var err error
		out, err = repos.Shipments.GetWithResources(ctx, doc.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("shipment_id", out.ID).Str("number", out.Number).
		Str("document_status", string(out.DocumentStatus)).Msg("despacho registrado")
	return toShipmentResponse(out), nil
}

// Update reemplaza cabecera y líneas de un borrador. Un despacho aprobado no se edita.
func (uc *ShipmentUseCase) Update(ctx context.Context, id int64, in dto.ShipmentRequest) (*dto.ShipmentResponse, error) {
	var out *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Shipments.GetWithResources(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound(shipmentEntity, id)
		}
		if doc.IsApproved() {
			return domain.BusinessRule("no se puede editar un documento de despacho aprobado; revóquelo primero")
		}
		now := uc.now()
		doc.Number = strings.TrimSpace(in.Number)
		doc.ClientID = in.ClientID
		doc.Date = in.Date
		if err := uc.checkHeader(ctx, repos, doc, id, now); err != nil {
			return err
		}
		if len(in.Resources) == 0 {
			return domain.BusinessRule("el documento de despacho no puede estar vacío")
		}
		doc.ClearResources()
		if err := addLines(ctx, repos, in.Resources, doc.AddResource); err != nil {
			return err
		}
		if in.Approve {
			if err := approve(ctx, repos, doc); err != nil {
				return err
			}
		}
		doc.UpdatedAt = now
		if err := repos.Shipments.Update(ctx, doc); err != nil {
			return err
		}
		out, err = repos.Shipments.GetWithResources(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("shipment_id", id).Str("document_status", string(out.DocumentStatus)).Msg("despacho actualizado")
	return toShipmentResponse(out), nil
}

// Delete elimina el despacho. Si estaba aprobado primero devuelve sus líneas al saldo.
func (uc *ShipmentUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Shipments.GetWithResources(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound(shipmentEntity, id)
		}
		if doc.IsApproved() {
			engine := domaininv.NewBalanceService(repos.Balances)
			if err := engine.ProcessShipmentLines(ctx, repository.ShipmentLines(doc.Resources), false); err != nil {
				return err
			}
		}
		return repos.Shipments.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("shipment_id", id).Msg("despacho eliminado")
	return nil
}

// Approve valida disponibilidad, descuenta las líneas del saldo y marca el despacho aprobado.
func (uc *ShipmentUseCase) Approve(ctx context.Context, id int64) (*dto.ShipmentResponse, error) {
	var out *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Shipments.GetWithResources(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound(shipmentEntity, id)
		}
		if err := approve(ctx, repos, doc); err != nil {
			return err
		}
		doc.UpdatedAt = uc.now()
		if err := repos.Shipments.Update(ctx, doc); err != nil {
			return err
		}
		out, err = repos.Shipments.GetWithResources(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("shipment_id", id).Msg("despacho aprobado")
	return toShipmentResponse(out), nil
}

// Revoke devuelve las líneas al saldo y regresa el despacho a borrador.
func (uc *ShipmentUseCase) Revoke(ctx context.Context, id int64) (*dto.ShipmentResponse, error) {
	var out *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Shipments.GetWithResources(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound(shipmentEntity, id)
		}
		if !doc.CanBeRevoked() {
			return domain.BusinessRule("el documento de despacho no está aprobado")
		}
		engine := domaininv.NewBalanceService(repos.Balances)
		if err := engine.ProcessShipmentLines(ctx, repository.ShipmentLines(doc.Resources), false); err != nil {
			return err
		}
		if err := doc.Revoke(); err != nil {
			return err
		}
		doc.UpdatedAt = uc.now()
		if err := repos.Shipments.Update(ctx, doc); err != nil {
			return err
		}
		out, err = repos.Shipments.GetWithResources(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("shipment_id", id).Msg("despacho revocado")
	return toShipmentResponse(out), nil
}

// GetByID devuelve el despacho con sus líneas y el nombre del cliente.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, id int64) (*dto.ShipmentResponse, error) {
	var out *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		out, err = repos.Shipments.GetWithResources(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.NotFound(shipmentEntity, id)
	}
	return toShipmentResponse(out), nil
}

// List devuelve los despachos que cumplen el filtro.
func (uc *ShipmentUseCase) List(ctx context.Context, filter repository.DocumentFilter) ([]dto.ShipmentResponse, error) {
	var docs []*entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		docs, err = repos.Shipments.List(ctx, filter.Normalized())
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toShipmentResponse(d))
	}
	return items, nil
}

// approve aplica la transición borrador -> aprobado con su efecto en el saldo.
func approve(ctx context.Context, repos Repos, doc *entity.ShipmentDocument) error {
	switch {
	case doc.IsApproved():
		return domain.BusinessRule("el documento de despacho ya está aprobado")
	case !doc.HasResources():
		return domain.BusinessRule("no se puede aprobar un documento de despacho vacío")
	case !doc.CanBeApproved():
		return domain.BusinessRule("el documento de despacho no puede ser aprobado")
	}
	engine := domaininv.NewBalanceService(repos.Balances)
	if err := engine.ProcessShipmentLines(ctx, repository.ShipmentLines(doc.Resources), true); err != nil {
		return err
	}
	return doc.Approve()
}

func (uc *ShipmentUseCase) checkHeader(ctx context.Context, repos Repos, doc *entity.ShipmentDocument, excludeID int64, now time.Time) error {
	if !doc.IsValidNumber() {
		return domain.BusinessRule("el número del documento de despacho no puede estar vacío")
	}
	if !doc.IsValidDate(now) {
		return domain.BusinessRule("la fecha del documento de despacho no es válida")
	}
	exists, err := repos.Shipments.ExistsByNumber(ctx, doc.Number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.DuplicateDocumentNumber(shipmentEntity, doc.Number)
	}
	client, err := repos.Clients.GetByID(ctx, doc.ClientID)
	if err != nil {
		return err
	}
	if client == nil || client.Status.IsArchived() {
		return domain.BusinessRule(fmt.Sprintf("el cliente con ID %d no existe o está archivado", doc.ClientID))
	}
	return nil
}
