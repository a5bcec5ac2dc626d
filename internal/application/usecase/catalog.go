package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

type existsByName func(ctx context.Context, name string, excludeID int64) (bool, error)

// checkUniqueName devuelve DuplicateName si otro registro ya usa el nombre.
func checkUniqueName(ctx context.Context, exists existsByName, entityName, name string, excludeID int64) error {
	found, err := exists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if found {
		return domain.DuplicateName(entityName, name)
	}
	return nil
}

func errSameStatus(entityName string, id int64, status entity.EntityStatus) error {
	if status.IsArchived() {
		return domain.InvalidEntityStatus(entityName, id, fmt.Sprintf("%s con ID %d ya está archivado", entityName, id))
	}
	return domain.InvalidEntityStatus(entityName, id, fmt.Sprintf("%s con ID %d ya está activo", entityName, id))
}
