package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const receiptEntity = "documento de ingreso"

// ReceiptUseCase ciclo de vida de los documentos de ingreso. Cada operación corre en una
// transacción: las líneas suman al saldo mientras el documento exista.
type ReceiptUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRunner TxRunner, log *logger.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// Create registra el ingreso y suma sus líneas al saldo.
func (uc *ReceiptUseCase) Create(ctx context.Context, in dto.ReceiptRequest) (*dto.ReceiptResponse, error) {
	var out *entity.ReceiptDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		now := uc.now()
		doc := &entity.ReceiptDocument{
			Number:    strings.TrimSpace(in.Number),
			Date:      in.Date,
			Status:    entity.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.checkHeader(ctx, repos, doc, 0, now); err != nil {
			return err
		}
		if err := addLines(ctx, repos, in.Resources, doc.AddResource); err != nil {
			return err
		}
		engine := domaininv.NewBalanceService(repos.Balances)
		if err := engine.ProcessReceiptLines(ctx, repository.ReceiptLines(doc.Resources), false); err != nil {
			return err
		}
		if err := repos.Receipts.Create(ctx, doc); err != nil {
			return err
		}
		var err error
		out, err = repos.Receipts.GetWithResources(ctx, doc.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("receipt_id", out.ID).Str("number", out.Number).Int("lines", len(out.Resources)).Msg("ingreso registrado")
	return toReceiptResponse(out), nil
}

// Update revierte el efecto de las líneas actuales, reemplaza cabecera y líneas y aplica
// las nuevas. Si la reversión no es posible (la mercancía ya salió) la edición se aborta.
func (uc *ReceiptUseCase) Update(ctx context.Context, id int64, in dto.ReceiptRequest) (*dto.ReceiptResponse, error) {
	var out *entity.ReceiptDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Receipts.GetWithResources(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound(receiptEntity, id)
		}
		now := uc.now()
		doc.Number = strings.TrimSpace(in.Number)
		doc.Date = in.Date
		if err := uc.checkHeader(ctx, repos, doc, id, now); err != nil {
			return err
		}

		engine := domaininv.NewBalanceService(repos.Balances)
		if err := engine.ProcessReceiptLines(ctx, repository.ReceiptLines(doc.Resources), true); err != nil {
			return err
		}
		doc.ClearResources()
		if err := addLines(ctx, repos, in.Resources, doc.AddResource); err != nil {
			return err
		}
		if err := engine.ProcessReceiptLines(ctx, repository.ReceiptLines(doc.Resources), false); err != nil {
			return err
		}
		doc.UpdatedAt = now
		if err := repos.Receipts.Update(ctx, doc); err != nil {
			return err
		}
		out, err = repos.Receipts.GetWithResources(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("receipt_id", id).Int("lines", len(out.Resources)).Msg("ingreso actualizado")
	return toReceiptResponse(out), nil
}

// Delete revierte el efecto del documento sobre el saldo y lo elimina junto con sus líneas.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Receipts.GetWithResources(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound(receiptEntity, id)
		}
		engine := domaininv.NewBalanceService(repos.Balances)
		if err := engine.ProcessReceiptLines(ctx, repository.ReceiptLines(doc.Resources), true); err != nil {
			return err
		}
		return repos.Receipts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("receipt_id", id).Msg("ingreso eliminado")
	return nil
}

// GetByID devuelve el documento con sus líneas.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id int64) (*dto.ReceiptResponse, error) {
	var out *entity.ReceiptDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		out, err = repos.Receipts.GetWithResources(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.NotFound(receiptEntity, id)
	}
	return toReceiptResponse(out), nil
}

// List devuelve los documentos que cumplen el filtro, por fecha descendente y número ascendente.
func (uc *ReceiptUseCase) List(ctx context.Context, filter repository.DocumentFilter) ([]dto.ReceiptResponse, error) {
	var docs []*entity.ReceiptDocument
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		docs, err = repos.Receipts.List(ctx, filter.Normalized())
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toReceiptResponse(d))
	}
	return items, nil
}

func (uc *ReceiptUseCase) checkHeader(ctx context.Context, repos Repos, doc *entity.ReceiptDocument, excludeID int64, now time.Time) error {
	if !doc.IsValidNumber() {
		return domain.BusinessRule("el número del documento de ingreso no puede estar vacío")
	}
	if !doc.IsValidDate(now) {
		return domain.BusinessRule("la fecha del documento de ingreso no es válida")
	}
	exists, err := repos.Receipts.ExistsByNumber(ctx, doc.Number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.DuplicateDocumentNumber(receiptEntity, doc.Number)
	}
	return nil
}
