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

var _ repository.ReceiptDocumentRepository = (*ReceiptDocumentRepo)(nil)

// ReceiptDocumentRepo implementación de ReceiptDocumentRepository con pgx.
type ReceiptDocumentRepo struct {
	q Querier
}

// NewReceiptDocumentRepository construye el repositorio.
func NewReceiptDocumentRepository(q Querier) *ReceiptDocumentRepo {
	return &ReceiptDocumentRepo{q: q}
}

const receiptSelect = `SELECT d.id, d.number, d.date, d.status, d.created_at, d.updated_at FROM receipt_documents d`

// Create inserta cabecera y líneas.
func (r *ReceiptDocumentRepo) Create(ctx context.Context, doc *entity.ReceiptDocument) error {
	query := `INSERT INTO receipt_documents (number, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.q.QueryRow(ctx, query, doc.Number, doc.Date, string(doc.Status), doc.CreatedAt, doc.UpdatedAt).Scan(&doc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateDocumentNumber("documento de ingreso", doc.Number)
		}
		return fmt.Errorf("insert receipt document: %w", err)
	}
	return receiptLines.insert(ctx, r.q, doc.ID, receiptLinePtrs(doc))
}

func (r *ReceiptDocumentRepo) GetWithResources(ctx context.Context, id int64) (*entity.ReceiptDocument, error) {
	doc, _, err := scanReceipt(r.q.QueryRow(ctx, receiptSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt document: %w", err)
	}
	lines, err := receiptLines.load(ctx, r.q, []int64{id})
	if err != nil {
		return nil, err
	}
	attachReceiptLines(doc, lines[id])
	return doc, nil
}

// Update actualiza la cabecera y reemplaza las líneas.
func (r *ReceiptDocumentRepo) Update(ctx context.Context, doc *entity.ReceiptDocument) error {
	query := `UPDATE receipt_documents SET number = $2, date = $3, status = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, doc.ID, doc.Number, doc.Date, string(doc.Status), doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateDocumentNumber("documento de ingreso", doc.Number)
		}
		return fmt.Errorf("update receipt document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("documento de ingreso", doc.ID)
	}
	return receiptLines.replace(ctx, r.q, doc.ID, receiptLinePtrs(doc))
}

// Delete borra el documento; las líneas caen por ON DELETE CASCADE.
func (r *ReceiptDocumentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM receipt_documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete receipt document: %w", err)
	}
	return nil
}

func (r *ReceiptDocumentRepo) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM receipt_documents WHERE lower(number) = lower($1) AND id <> $2)`, number, excludeID)
}

func (r *ReceiptDocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.ReceiptDocument, error) {
	where, args := documentWhere(filter, receiptLines)
	rows, err := r.q.Query(ctx, receiptSelect+where+documentOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipt documents: %w", err)
	}
	docs, ids, err := collectIDs(rows, scanReceipt)
	if err != nil {
		return nil, err
	}
	lines, err := receiptLines.load(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		attachReceiptLines(d, lines[d.ID])
	}
	return docs, nil
}

func scanReceipt(row pgx.Row) (*entity.ReceiptDocument, int64, error) {
	var d entity.ReceiptDocument
	var status string
	if err := row.Scan(&d.ID, &d.Number, &d.Date, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, 0, err
	}
	d.Status = entity.EntityStatus(status)
	return &d, d.ID, nil
}

func receiptLinePtrs(doc *entity.ReceiptDocument) []*entity.ResourceLine {
	out := make([]*entity.ResourceLine, len(doc.Resources))
	for i := range doc.Resources {
		doc.Resources[i].ReceiptDocumentID = doc.ID
		out[i] = &doc.Resources[i].ResourceLine
	}
	return out
}

func attachReceiptLines(doc *entity.ReceiptDocument, lines []entity.ResourceLine) {
	doc.Resources = make([]entity.ReceiptResource, 0, len(lines))
	for _, l := range lines {
		doc.Resources = append(doc.Resources, entity.ReceiptResource{ResourceLine: l, ReceiptDocumentID: doc.ID})
	}
}
