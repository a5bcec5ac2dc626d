package entity

import (
	"strings"
	"time"
)

// Resource representa un recurso (mercancía) que se almacena en la bodega.
type Resource struct {
	ID        int64
	Name      string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidName verifica que el nombre no esté vacío.
func (r *Resource) IsValidName() bool {
	return strings.TrimSpace(r.Name) != ""
}
