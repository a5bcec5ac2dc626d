package entity

import (
	"strings"
	"time"
)

// UnitOfMeasure unidad de medida con la que se cuantifica un recurso (kg, caja, litro...).
type UnitOfMeasure struct {
	ID        int64
	Name      string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidName verifica que el nombre no esté vacío.
func (u *UnitOfMeasure) IsValidName() bool {
	return strings.TrimSpace(u.Name) != ""
}
