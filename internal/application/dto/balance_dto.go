package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse saldo de un par (recurso, unidad).
type BalanceResponse struct {
	ID              int64           `json:"id"`
	ResourceID      int64           `json:"resource_id"`
	ResourceName    string          `json:"resource_name"`
	UnitOfMeasureID int64           `json:"unit_of_measure_id"`
	UnitName        string          `json:"unit_name"`
	Quantity        decimal.Decimal `json:"quantity" swaggertype:"string"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
