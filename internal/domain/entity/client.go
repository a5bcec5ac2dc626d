package entity

import (
	"strings"
	"time"
)

// Client representa un cliente destinatario de los despachos.
type Client struct {
	ID        int64
	Name      string
	Address   string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidName verifica que el nombre no esté vacío.
func (c *Client) IsValidName() bool {
	return strings.TrimSpace(c.Name) != ""
}
