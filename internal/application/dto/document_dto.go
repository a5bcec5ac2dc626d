package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de un documento (ingreso o despacho).
type DocumentLineRequest struct {
	ResourceID      int64           `json:"resource_id" validate:"required,gt=0"`
	UnitOfMeasureID int64           `json:"unit_of_measure_id" validate:"required,gt=0"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"string" example:"10.5"`
}

// DocumentLineResponse línea de un documento con nombres resueltos.
type DocumentLineResponse struct {
	ID              int64           `json:"id"`
	ResourceID      int64           `json:"resource_id"`
	ResourceName    string          `json:"resource_name"`
	UnitOfMeasureID int64           `json:"unit_of_measure_id"`
	UnitName        string          `json:"unit_name"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"string"`
}

// ReceiptRequest entrada para crear o actualizar un documento de ingreso. Puede no tener líneas.
type ReceiptRequest struct {
	Number    string                `json:"number" validate:"required,max=50"`
	Date      time.Time             `json:"date" validate:"required"`
	Resources []DocumentLineRequest `json:"resources" validate:"dive"`
}

// ReceiptResponse salida de un documento de ingreso.
type ReceiptResponse struct {
	ID        int64                  `json:"id"`
	Number    string                 `json:"number"`
	Date      time.Time              `json:"date"`
	Status    string                 `json:"status"`
	Resources []DocumentLineResponse `json:"resources"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ShipmentRequest entrada para crear o actualizar un despacho. Approve=true lo aprueba en la
// misma transacción.
type ShipmentRequest struct {
	Number    string                `json:"number" validate:"required,max=50"`
	ClientID  int64                 `json:"client_id" validate:"required,gt=0"`
	Date      time.Time             `json:"date" validate:"required"`
	Resources []DocumentLineRequest `json:"resources" validate:"required,min=1,dive"`
	Approve   bool                  `json:"approve"`
}

// ShipmentResponse salida de un documento de despacho.
type ShipmentResponse struct {
	ID             int64                  `json:"id"`
	Number         string                 `json:"number"`
	ClientID       int64                  `json:"client_id"`
	ClientName     string                 `json:"client_name"`
	Date           time.Time              `json:"date"`
	DocumentStatus string                 `json:"document_status"`
	Status         string                 `json:"status"`
	Resources      []DocumentLineResponse `json:"resources"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
