package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// lineTable describe la tabla de líneas de un tipo de documento.
type lineTable struct {
	name string // receipt_resources | shipment_resources
	fk   string // receipt_document_id | shipment_document_id
}

var (
	receiptLines  = lineTable{name: "receipt_resources", fk: "receipt_document_id"}
	shipmentLines = lineTable{name: "shipment_resources", fk: "shipment_document_id"}
)

// insert guarda las líneas en orden y asigna sus IDs.
func (t lineTable) insert(ctx context.Context, q Querier, docID int64, lines []*entity.ResourceLine) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, resource_id, unit_of_measure_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`, t.name, t.fk)
	for i, l := range lines {
		if err := q.QueryRow(ctx, query, docID, l.ResourceID, l.UnitOfMeasureID, l.Quantity, i).Scan(&l.ID); err != nil {
			return fmt.Errorf("insert %s: %w", t.name, err)
		}
	}
	return nil
}

// replace borra las líneas actuales del documento y guarda las nuevas.
func (t lineTable) replace(ctx context.Context, q Querier, docID int64, lines []*entity.ResourceLine) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.name, t.fk), docID); err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	return t.insert(ctx, q, docID, lines)
}

// load devuelve las líneas de los documentos indicados, agrupadas por documento y en orden de captura.
func (t lineTable) load(ctx context.Context, q Querier, docIDs []int64) (map[int64][]entity.ResourceLine, error) {
	out := make(map[int64][]entity.ResourceLine, len(docIDs))
	if len(docIDs) == 0 {
		return out, nil
	}
	query := fmt.Sprintf(`SELECT l.%s, l.id, l.resource_id, l.unit_of_measure_id, l.quantity, r.name, u.name
		FROM %s l
		JOIN resources r ON r.id = l.resource_id
		JOIN units_of_measure u ON u.id = l.unit_of_measure_id
		WHERE l.%s = ANY($1)
		ORDER BY l.%s, l.position, l.id`, t.fk, t.name, t.fk, t.fk)
	rows, err := q.Query(ctx, query, docIDs)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var docID int64
		var l entity.ResourceLine
		if err := rows.Scan(&docID, &l.ID, &l.ResourceID, &l.UnitOfMeasureID, &l.Quantity, &l.ResourceName, &l.UnitName); err != nil {
			return nil, err
		}
		out[docID] = append(out[docID], l)
	}
	return out, rows.Err()
}

// documentWhere traduce el filtro (ya normalizado) a condiciones SQL sobre el alias d.
// Las familias se combinan con AND; dentro de cada una, ANY equivale a OR.
func documentWhere(f repository.DocumentFilter, lines lineTable) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.DateFrom != nil {
		conds = append(conds, "d.date >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "d.date <= "+arg(*f.DateTo))
	}
	if len(f.Numbers) > 0 {
		conds = append(conds, "d.number = ANY("+arg(f.Numbers)+")")
	}
	if len(f.ResourceIDs) > 0 {
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM %s l WHERE l.%s = d.id AND l.resource_id = ANY(%s))",
			lines.name, lines.fk, arg(f.ResourceIDs)))
	}
	if len(f.UnitIDs) > 0 {
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM %s l WHERE l.%s = d.id AND l.unit_of_measure_id = ANY(%s))",
			lines.name, lines.fk, arg(f.UnitIDs)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// documentOrder fecha descendente y número ascendente por bytes.
const documentOrder = ` ORDER BY d.date DESC, d.number COLLATE "C" ASC, d.id`

func collectIDs[T any](rows pgx.Rows, scan func(pgx.Row) (T, int64, error)) ([]T, []int64, error) {
	defer rows.Close()
	var items []T
	var ids []int64
	for rows.Next() {
		item, id, err := scan(rows)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		ids = append(ids, id)
	}
	return items, ids, rows.Err()
}
