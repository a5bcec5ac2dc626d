package memory

import (
	"context"
	"maps"
	"slices"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ResourceRepository      = (*ResourceRepo)(nil)
	_ repository.UnitOfMeasureRepository = (*UnitOfMeasureRepo)(nil)
	_ repository.ClientRepository        = (*ClientRepo)(nil)
)

// ResourceRepo recursos en memoria.
type ResourceRepo struct{ base }

func (r *ResourceRepo) Create(_ context.Context, res *entity.Resource) error {
	return r.do(func(st *state) error {
		for _, v := range st.resources {
			if sameName(v.Name, res.Name) {
				return domain.DuplicateName("recurso", res.Name)
			}
		}
		res.ID = st.nextID("resources")
		cp := *res
		st.resources[res.ID] = &cp
		return nil
	})
}

func (r *ResourceRepo) GetByID(_ context.Context, id int64) (*entity.Resource, error) {
	var out *entity.Resource
	err := r.do(func(st *state) error {
		if v, ok := st.resources[id]; ok {
			cp := *v
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *ResourceRepo) Update(_ context.Context, res *entity.Resource) error {
	return r.do(func(st *state) error {
		if _, ok := st.resources[res.ID]; !ok {
			return domain.NotFound("recurso", res.ID)
		}
		cp := *res
		st.resources[res.ID] = &cp
		return nil
	})
}

func (r *ResourceRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		delete(st.resources, id)
		return nil
	})
}

func (r *ResourceRepo) List(_ context.Context, includeArchived bool) ([]*entity.Resource, error) {
	var out []*entity.Resource
	err := r.do(func(st *state) error {
		for _, v := range st.resources {
			if includeArchived || !v.Status.IsArchived() {
				cp := *v
				out = append(out, &cp)
			}
		}
		return nil
	})
	return sortedByName(out, func(v *entity.Resource) string { return v.Name }), err
}

func (r *ResourceRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		for _, v := range st.resources {
			if v.ID != excludeID && sameName(v.Name, name) {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r *ResourceRepo) IsInUse(_ context.Context, id int64) (bool, error) {
	var used bool
	err := r.do(func(st *state) error {
		used = st.usesLine(func(l entity.ResourceLine) bool { return l.ResourceID == id }) ||
			slices.ContainsFunc(slices.Collect(maps.Values(st.balances)), func(b *entity.Balance) bool {
				return b.ResourceID == id
			})
		return nil
	})
	return used, err
}

// UnitOfMeasureRepo unidades de medida en memoria.
type UnitOfMeasureRepo struct{ base }

func (r *UnitOfMeasureRepo) Create(_ context.Context, u *entity.UnitOfMeasure) error {
	return r.do(func(st *state) error {
		for _, v := range st.units {
			if sameName(v.Name, u.Name) {
				return domain.DuplicateName("unidad de medida", u.Name)
			}
		}
		u.ID = st.nextID("units_of_measure")
		cp := *u
		st.units[u.ID] = &cp
		return nil
	})
}

func (r *UnitOfMeasureRepo) GetByID(_ context.Context, id int64) (*entity.UnitOfMeasure, error) {
	var out *entity.UnitOfMeasure
	err := r.do(func(st *state) error {
		if v, ok := st.units[id]; ok {
			cp := *v
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *UnitOfMeasureRepo) Update(_ context.Context, u *entity.UnitOfMeasure) error {
	return r.do(func(st *state) error {
		if _, ok := st.units[u.ID]; !ok {
			return domain.NotFound("unidad de medida", u.ID)
		}
		cp := *u
		st.units[u.ID] = &cp
		return nil
	})
}

func (r *UnitOfMeasureRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		delete(st.units, id)
		return nil
	})
}

func (r *UnitOfMeasureRepo) List(_ context.Context, includeArchived bool) ([]*entity.UnitOfMeasure, error) {
	var out []*entity.UnitOfMeasure
	err := r.do(func(st *state) error {
		for _, v := range st.units {
			if includeArchived || !v.Status.IsArchived() {
				cp := *v
				out = append(out, &cp)
			}
		}
		return nil
	})
	return sortedByName(out, func(v *entity.UnitOfMeasure) string { return v.Name }), err
}

func (r *UnitOfMeasureRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		for _, v := range st.units {
			if v.ID != excludeID && sameName(v.Name, name) {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r *UnitOfMeasureRepo) IsInUse(_ context.Context, id int64) (bool, error) {
	var used bool
	err := r.do(func(st *state) error {
		used = st.usesLine(func(l entity.ResourceLine) bool { return l.UnitOfMeasureID == id }) ||
			slices.ContainsFunc(slices.Collect(maps.Values(st.balances)), func(b *entity.Balance) bool {
				return b.UnitOfMeasureID == id
			})
		return nil
	})
	return used, err
}

// ClientRepo clientes en memoria.
type ClientRepo struct{ base }

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.do(func(st *state) error {
		for _, v := range st.clients {
			if sameName(v.Name, c.Name) {
				return domain.DuplicateName("cliente", c.Name)
			}
		}
		c.ID = st.nextID("clients")
		cp := *c
		st.clients[c.ID] = &cp
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	var out *entity.Client
	err := r.do(func(st *state) error {
		if v, ok := st.clients[id]; ok {
			cp := *v
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.do(func(st *state) error {
		if _, ok := st.clients[c.ID]; !ok {
			return domain.NotFound("cliente", c.ID)
		}
		cp := *c
		st.clients[c.ID] = &cp
		return nil
	})
}

func (r *ClientRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		delete(st.clients, id)
		return nil
	})
}

func (r *ClientRepo) List(_ context.Context, includeArchived bool) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.do(func(st *state) error {
		for _, v := range st.clients {
			if includeArchived || !v.Status.IsArchived() {
				cp := *v
				out = append(out, &cp)
			}
		}
		return nil
	})
	return sortedByName(out, func(v *entity.Client) string { return v.Name }), err
}

func (r *ClientRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		for _, v := range st.clients {
			if v.ID != excludeID && sameName(v.Name, name) {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r *ClientRepo) IsInUse(_ context.Context, id int64) (bool, error) {
	var used bool
	err := r.do(func(st *state) error {
		for _, d := range st.shipments {
			if d.ClientID == id {
				used = true
			}
		}
		return nil
	})
	return used, err
}

// usesLine indica si alguna línea de ingreso o despacho cumple pred.
func (st *state) usesLine(pred func(entity.ResourceLine) bool) bool {
	for _, d := range st.receipts {
		for _, l := range d.Resources {
			if pred(l.ResourceLine) {
				return true
			}
		}
	}
	for _, d := range st.shipments {
		for _, l := range d.Resources {
			if pred(l.ResourceLine) {
				return true
			}
		}
	}
	return false
}
