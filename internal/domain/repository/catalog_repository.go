package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ResourceRepository define el puerto de persistencia para recursos.
// GetByID devuelve (nil, nil) cuando no existe.
type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	GetByID(ctx context.Context, id int64) (*entity.Resource, error)
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id int64) error
	// List ordena por nombre; includeArchived=false devuelve solo activos.
	List(ctx context.Context, includeArchived bool) ([]*entity.Resource, error)
	// ExistsByName compara sin distinguir mayúsculas; excludeID=0 no excluye ninguno.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	// IsInUse: referenciado por líneas de ingreso, de despacho o filas de saldo.
	IsInUse(ctx context.Context, id int64) (bool, error)
}

// UnitOfMeasureRepository define el puerto de persistencia para unidades de medida.
type UnitOfMeasureRepository interface {
	Create(ctx context.Context, unit *entity.UnitOfMeasure) error
	GetByID(ctx context.Context, id int64) (*entity.UnitOfMeasure, error)
	Update(ctx context.Context, unit *entity.UnitOfMeasure) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, includeArchived bool) ([]*entity.UnitOfMeasure, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	IsInUse(ctx context.Context, id int64) (bool, error)
}

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, includeArchived bool) ([]*entity.Client, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	// IsInUse: referenciado por algún documento de despacho.
	IsInUse(ctx context.Context, id int64) (bool, error)
}
