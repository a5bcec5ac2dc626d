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

var _ repository.UnitOfMeasureRepository = (*UnitOfMeasureRepo)(nil)

// UnitOfMeasureRepo implementación de UnitOfMeasureRepository con pgx.
type UnitOfMeasureRepo struct {
	q Querier
}

// NewUnitOfMeasureRepository construye el repositorio.
func NewUnitOfMeasureRepository(q Querier) *UnitOfMeasureRepo {
	return &UnitOfMeasureRepo{q: q}
}

func (r *UnitOfMeasureRepo) Create(ctx context.Context, u *entity.UnitOfMeasure) error {
	query := `INSERT INTO units_of_measure (name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRow(ctx, query, u.Name, string(u.Status), u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateName("unidad de medida", u.Name)
		}
		return fmt.Errorf("insert unit of measure: %w", err)
	}
	return nil
}

func (r *UnitOfMeasureRepo) GetByID(ctx context.Context, id int64) (*entity.UnitOfMeasure, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM units_of_measure WHERE id = $1`
	var u entity.UnitOfMeasure
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit of measure: %w", err)
	}
	u.Status = entity.EntityStatus(status)
	return &u, nil
}

func (r *UnitOfMeasureRepo) Update(ctx context.Context, u *entity.UnitOfMeasure) error {
	query := `UPDATE units_of_measure SET name = $2, status = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Name, string(u.Status), u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateName("unidad de medida", u.Name)
		}
		return fmt.Errorf("update unit of measure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("unidad de medida", u.ID)
	}
	return nil
}

func (r *UnitOfMeasureRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM units_of_measure WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.EntityInUse("unidad de medida", id)
		}
		return fmt.Errorf("delete unit of measure: %w", err)
	}
	return nil
}

func (r *UnitOfMeasureRepo) List(ctx context.Context, includeArchived bool) ([]*entity.UnitOfMeasure, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM units_of_measure
		WHERE $1 OR status = 'active'
		ORDER BY lower(name), id`
	rows, err := r.q.Query(ctx, query, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list units of measure: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitOfMeasure
	for rows.Next() {
		var u entity.UnitOfMeasure
		var status string
		if err := rows.Scan(&u.ID, &u.Name, &status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Status = entity.EntityStatus(status)
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitOfMeasureRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM units_of_measure WHERE lower(name) = lower($1) AND id <> $2)`, name, excludeID)
}

func (r *UnitOfMeasureRepo) IsInUse(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, `SELECT
		EXISTS (SELECT 1 FROM balances WHERE unit_of_measure_id = $1)
		OR EXISTS (SELECT 1 FROM receipt_resources WHERE unit_of_measure_id = $1)
		OR EXISTS (SELECT 1 FROM shipment_resources WHERE unit_of_measure_id = $1)`, id)
}
