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

var _ repository.ResourceRepository = (*ResourceRepo)(nil)

// ResourceRepo implementación de ResourceRepository con pgx.
type ResourceRepo struct {
	q Querier
}

// NewResourceRepository construye el repositorio.
func NewResourceRepository(q Querier) *ResourceRepo {
	return &ResourceRepo{q: q}
}

func (r *ResourceRepo) Create(ctx context.Context, res *entity.Resource) error {
	query := `INSERT INTO resources (name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.q.QueryRow(ctx, query, res.Name, string(res.Status), res.CreatedAt, res.UpdatedAt).Scan(&res.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateName("recurso", res.Name)
		}
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (r *ResourceRepo) GetByID(ctx context.Context, id int64) (*entity.Resource, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM resources WHERE id = $1`
	var res entity.Resource
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(&res.ID, &res.Name, &status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	res.Status = entity.EntityStatus(status)
	return &res, nil
}

func (r *ResourceRepo) Update(ctx context.Context, res *entity.Resource) error {
	query := `UPDATE resources SET name = $2, status = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, res.ID, res.Name, string(res.Status), res.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateName("recurso", res.Name)
		}
		return fmt.Errorf("update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("recurso", res.ID)
	}
	return nil
}

func (r *ResourceRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.EntityInUse("recurso", id)
		}
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}

func (r *ResourceRepo) List(ctx context.Context, includeArchived bool) ([]*entity.Resource, error) {
	query := `SELECT id, name, status, created_at, updated_at FROM resources
		WHERE $1 OR status = 'active'
		ORDER BY lower(name), id`
	rows, err := r.q.Query(ctx, query, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()
	var list []*entity.Resource
	for rows.Next() {
		var res entity.Resource
		var status string
		if err := rows.Scan(&res.ID, &res.Name, &status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		res.Status = entity.EntityStatus(status)
		list = append(list, &res)
	}
	return list, rows.Err()
}

func (r *ResourceRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM resources WHERE lower(name) = lower($1) AND id <> $2)`, name, excludeID)
}

// IsInUse un recurso está en uso si tiene saldo o aparece en líneas de ingreso o despacho.
func (r *ResourceRepo) IsInUse(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, `SELECT
		EXISTS (SELECT 1 FROM balances WHERE resource_id = $1)
		OR EXISTS (SELECT 1 FROM receipt_resources WHERE resource_id = $1)
		OR EXISTS (SELECT 1 FROM shipment_resources WHERE resource_id = $1)`, id)
}

// exists ejecuta una consulta SELECT EXISTS (...) y devuelve su resultado.
func exists(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}
