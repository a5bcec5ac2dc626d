package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldos en memoria. Dentro de una transacción el mutex del Store ya
// serializa, así que GetForUpdate equivale a Get.
type BalanceRepo struct{ base }

func (r *BalanceRepo) Get(_ context.Context, resourceID, unitID int64) (*entity.Balance, error) {
	var out *entity.Balance
	err := r.do(func(st *state) error {
		if b := st.findBalance(resourceID, unitID); b != nil {
			cp := *b
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *BalanceRepo) GetForUpdate(ctx context.Context, resourceID, unitID int64) (*entity.Balance, error) {
	return r.Get(ctx, resourceID, unitID)
}

func (r *BalanceRepo) Create(_ context.Context, b *entity.Balance) error {
	return r.do(func(st *state) error {
		if st.findBalance(b.ResourceID, b.UnitOfMeasureID) != nil {
			return domain.BusinessRule("ya existe un saldo para el recurso y la unidad indicados")
		}
		b.ID = st.nextID("balances")
		cp := *b
		st.balances[b.ID] = &cp
		return nil
	})
}

func (r *BalanceRepo) Update(_ context.Context, b *entity.Balance) error {
	return r.do(func(st *state) error {
		if _, ok := st.balances[b.ID]; !ok {
			return domain.NotFound("saldo", b.ID)
		}
		cp := *b
		st.balances[b.ID] = &cp
		return nil
	})
}

func (r *BalanceRepo) List(_ context.Context, filter repository.BalanceFilter) ([]*entity.Balance, error) {
	var out []*entity.Balance
	err := r.do(func(st *state) error {
		for _, b := range st.balances {
			if !filter.Matches(b) {
				continue
			}
			cp := *b
			cp.ResourceName, cp.UnitName = st.lineNames(b.ResourceID, b.UnitOfMeasureID)
			out = append(out, &cp)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Balance) int {
		if c := strings.Compare(folder.String(a.ResourceName), folder.String(b.ResourceName)); c != 0 {
			return c
		}
		return strings.Compare(folder.String(a.UnitName), folder.String(b.UnitName))
	})
	return out, err
}

func (st *state) findBalance(resourceID, unitID int64) *entity.Balance {
	for _, b := range st.balances {
		if b.ResourceID == resourceID && b.UnitOfMeasureID == unitID {
			return b
		}
	}
	return nil
}

func (st *state) lineNames(resourceID, unitID int64) (resourceName, unitName string) {
	if r, ok := st.resources[resourceID]; ok {
		resourceName = r.Name
	}
	if u, ok := st.units[unitID]; ok {
		unitName = u.Name
	}
	return resourceName, unitName
}
