package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ShipmentDocumentRepository = (*ShipmentDocumentRepo)(nil)

// ShipmentDocumentRepo implementación de ShipmentDocumentRepository con pgx.
type ShipmentDocumentRepo struct {
	q Querier
}

// NewShipmentDocumentRepository construye el repositorio.
func NewShipmentDocumentRepository(q Querier) *ShipmentDocumentRepo {
	return &ShipmentDocumentRepo{q: q}
}

const shipmentSelect = `SELECT d.id, d.number, d.client_id, c.name, d.date, d.document_status, d.status, d.created_at, d.updated_at
	FROM shipment_documents d
	JOIN clients c ON c.id = d.client_id`

func (r *ShipmentDocumentRepo) Create(ctx context.Context, doc *entity.ShipmentDocument) error {
	query := `INSERT INTO shipment_documents (number, client_id, date, document_status, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.q.QueryRow(ctx, query, doc.Number, doc.ClientID, doc.Date, string(doc.DocumentStatus),
		string(doc.Status), doc.CreatedAt, doc.UpdatedAt).Scan(&doc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateDocumentNumber("documento de despacho", doc.Number)
		}
		return fmt.Errorf("insert shipment document: %w", err)
	}
	return shipmentLines.insert(ctx, r.q, doc.ID, shipmentLinePtrs(doc))
}

func (r *ShipmentDocumentRepo) GetWithResources(ctx context.Context, id int64) (*entity.ShipmentDocument, error) {
	doc, _, err := scanShipment(r.q.QueryRow(ctx, shipmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment document: %w", err)
	}
	lines, err := shipmentLines.load(ctx, r.q, []int64{id})
	if err != nil {
		return nil, err
	}
	attachShipmentLines(doc, lines[id])
	return doc, nil
}

// Update actualiza cabecera (incluido el estado de aprobación) y reemplaza las líneas.
func (r *ShipmentDocumentRepo) Update(ctx context.Context, doc *entity.ShipmentDocument) error {
	query := `UPDATE shipment_documents
		SET number = $2, client_id = $3, date = $4, document_status = $5, status = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, doc.ID, doc.Number, doc.ClientID, doc.Date,
		string(doc.DocumentStatus), string(doc.Status), doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateDocumentNumber("documento de despacho", doc.Number)
		}
		return fmt.Errorf("update shipment document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("documento de despacho", doc.ID)
	}
	return shipmentLines.replace(ctx, r.q, doc.ID, shipmentLinePtrs(doc))
}

func (r *ShipmentDocumentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shipment document: %w", err)
	}
	return nil
}

func (r *ShipmentDocumentRepo) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM shipment_documents WHERE lower(number) = lower($1) AND id <> $2)`, number, excludeID)
}

func (r *ShipmentDocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.ShipmentDocument, error) {
	where, args := documentWhere(filter, shipmentLines)
	rows, err := r.q.Query(ctx, shipmentSelect+where+documentOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipment documents: %w", err)
	}
	docs, ids, err := collectIDs(rows, scanShipment)
	if err != nil {
		return nil, err
	}
	lines, err := shipmentLines.load(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		attachShipmentLines(d, lines[d.ID])
	}
	return docs, nil
}

func scanShipment(row pgx.Row) (*entity.ShipmentDocument, int64, error) {
	var d entity.ShipmentDocument
	var docStatus, status string
	if err := row.Scan(&d.ID, &d.Number, &d.ClientID, &d.ClientName, &d.Date, &docStatus, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, 0, err
	}
	d.DocumentStatus = entity.DocumentStatus(docStatus)
	d.Status = entity.EntityStatus(status)
	return &d, d.ID, nil
}

func shipmentLinePtrs(doc *entity.ShipmentDocument) []*entity.ResourceLine {
	out := make([]*entity.ResourceLine, len(doc.Resources))
	for i := range doc.Resources {
		doc.Resources[i].ShipmentDocumentID = doc.ID
		out[i] = &doc.Resources[i].ResourceLine
	}
	return out
}

func attachShipmentLines(doc *entity.ShipmentDocument, lines []entity.ResourceLine) {
	doc.Resources = make([]entity.ShipmentResource, 0, len(lines))
	for _, l := range lines {
		doc.Resources = append(doc.Resources, entity.ShipmentResource{ResourceLine: l, ShipmentDocumentID: doc.ID})
	}
}
