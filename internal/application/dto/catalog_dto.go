package dto

import "time"

// CreateResourceRequest entrada para crear un recurso.
type CreateResourceRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// UpdateResourceRequest entrada para renombrar un recurso.
type UpdateResourceRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ResourceResponse salida de un recurso.
type ResourceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUnitRequest entrada para crear una unidad de medida.
type CreateUnitRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateUnitRequest entrada para renombrar una unidad de medida.
type UpdateUnitRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UnitResponse salida de una unidad de medida.
type UnitResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateClientRequest entrada para actualizar un cliente.
type UpdateClientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=500"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
