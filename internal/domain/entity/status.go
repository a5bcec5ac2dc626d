package entity

// EntityStatus estado administrativo de catálogos y documentos (activo / archivado).
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusArchived EntityStatus = "archived"
)

// IsArchived indica si el estado es archivado.
func (s EntityStatus) IsArchived() bool { return s == StatusArchived }

// DocumentStatus estado del flujo de aprobación de un documento de despacho.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusApproved DocumentStatus = "approved"
)
