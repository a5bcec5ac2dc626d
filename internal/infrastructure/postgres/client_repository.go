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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository con pgx.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el repositorio.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, address, status, created_at, updated_at`

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (name, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.q.QueryRow(ctx, query, c.Name, c.Address, string(c.Status), c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateName("cliente", c.Name)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `UPDATE clients SET name = $2, address = $3, status = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Address, string(c.Status), c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateName("cliente", c.Name)
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cliente", c.ID)
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.EntityInUse("cliente", id)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (r *ClientRepo) List(ctx context.Context, includeArchived bool) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE $1 OR status = 'active'
		ORDER BY lower(name), id`
	rows, err := r.q.Query(ctx, query, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM clients WHERE lower(name) = lower($1) AND id <> $2)`, name, excludeID)
}

// IsInUse un cliente está en uso si algún despacho lo referencia.
func (r *ClientRepo) IsInUse(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.q, `SELECT EXISTS (SELECT 1 FROM shipment_documents WHERE client_id = $1)`, id)
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = entity.EntityStatus(status)
	return &c, nil
}
