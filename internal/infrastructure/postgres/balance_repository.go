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

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository con pgx.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el repositorio.
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const balanceSelect = `SELECT b.id, b.resource_id, b.unit_of_measure_id, b.quantity, b.updated_at, r.name, u.name
	FROM balances b
	JOIN resources r ON r.id = b.resource_id
	JOIN units_of_measure u ON u.id = b.unit_of_measure_id`

func (r *BalanceRepo) Get(ctx context.Context, resourceID, unitID int64) (*entity.Balance, error) {
	return r.get(ctx, balanceSelect+` WHERE b.resource_id = $1 AND b.unit_of_measure_id = $2`, resourceID, unitID)
}

// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, resourceID, unitID int64) (*entity.Balance, error) {
	return r.get(ctx, balanceSelect+` WHERE b.resource_id = $1 AND b.unit_of_measure_id = $2 FOR UPDATE OF b`, resourceID, unitID)
}

func (r *BalanceRepo) get(ctx context.Context, query string, resourceID, unitID int64) (*entity.Balance, error) {
	b, err := scanBalance(r.q.QueryRow(ctx, query, resourceID, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// Create inserta el saldo. Si otra transacción creó la fila entre la lectura y el insert,
// el delta (siempre >= 0 al crear) se suma a la fila existente.
func (r *BalanceRepo) Create(ctx context.Context, b *entity.Balance) error {
	query := `INSERT INTO balances (resource_id, unit_of_measure_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (resource_id, unit_of_measure_id)
		DO UPDATE SET quantity = balances.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING id, quantity`
	err := r.q.QueryRow(ctx, query, b.ResourceID, b.UnitOfMeasureID, b.Quantity, b.UpdatedAt).Scan(&b.ID, &b.Quantity)
	if err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

func (r *BalanceRepo) Update(ctx context.Context, b *entity.Balance) error {
	tag, err := r.q.Exec(ctx, `UPDATE balances SET quantity = $2, updated_at = $3 WHERE id = $1`,
		b.ID, b.Quantity, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("saldo", b.ID)
	}
	return nil
}

func (r *BalanceRepo) List(ctx context.Context, filter repository.BalanceFilter) ([]*entity.Balance, error) {
	query := balanceSelect + `
		WHERE ($1::bigint[] IS NULL OR b.resource_id = ANY($1))
		  AND ($2::bigint[] IS NULL OR b.unit_of_measure_id = ANY($2))
		ORDER BY lower(r.name), lower(u.name), b.id`
	rows, err := r.q.Query(ctx, query, idsOrNull(filter.ResourceIDs), idsOrNull(filter.UnitIDs))
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBalance(row pgx.Row) (*entity.Balance, error) {
	var b entity.Balance
	if err := row.Scan(&b.ID, &b.ResourceID, &b.UnitOfMeasureID, &b.Quantity, &b.UpdatedAt, &b.ResourceName, &b.UnitName); err != nil {
		return nil, err
	}
	return &b, nil
}

// idsOrNull un filtro vacío viaja como NULL para que la condición no filtre.
func idsOrNull(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
