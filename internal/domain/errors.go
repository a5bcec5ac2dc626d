package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Tipos de error de dominio (sin dependencias de infraestructura).
// Los errores con datos (*Error, *InsufficientBalanceError) se desenvuelven a uno de estos,
// así que los llamadores comparan con errors.Is.
var (
	ErrInvalidArgument         = errors.New("argumento inválido")
	ErrInsufficientBalance     = errors.New("saldo insuficiente")
	ErrDuplicateName           = errors.New("nombre duplicado")
	ErrDuplicateDocumentNumber = errors.New("número de documento duplicado")
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidEntityStatus     = errors.New("estado de la entidad inválido")
	ErrEntityInUse             = errors.New("la entidad está en uso")
	ErrBusinessRule            = errors.New("regla de negocio violada")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
)

// Error lleva el tipo de error más el contexto de la entidad afectada.
type Error struct {
	Kind    error
	Message string
	Entity  string
	ID      int64
	Value   string
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrNotFound), etc.
func (e *Error) Unwrap() error { return e.Kind }

// InvalidArgument entrada mal formada para una operación del núcleo.
func InvalidArgument(msg string) error {
	return &Error{Kind: ErrInvalidArgument, Message: msg}
}

// BusinessRule violación de una regla del flujo (editar despacho aprobado, aprobar vacío, ...).
func BusinessRule(msg string) error {
	return &Error{Kind: ErrBusinessRule, Message: msg}
}

// NotFound la entidad referenciada no existe.
func NotFound(entity string, id int64) error {
	return &Error{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("%s con ID %d no encontrado", entity, id),
		Entity:  entity,
		ID:      id,
	}
}

// DuplicateName ya existe una entidad con ese nombre.
func DuplicateName(entity, name string) error {
	return &Error{
		Kind:    ErrDuplicateName,
		Message: fmt.Sprintf("ya existe %s con el nombre '%s'", entity, name),
		Entity:  entity,
		Value:   name,
	}
}

// DuplicateDocumentNumber ya existe un documento de ese tipo con ese número.
func DuplicateDocumentNumber(docType, number string) error {
	return &Error{
		Kind:    ErrDuplicateDocumentNumber,
		Message: fmt.Sprintf("ya existe un %s con el número '%s'", docType, number),
		Entity:  docType,
		Value:   number,
	}
}

// InvalidEntityStatus la operación no aplica al estado actual (p. ej. archivar dos veces).
func InvalidEntityStatus(entity string, id int64, msg string) error {
	return &Error{
		Kind:    ErrInvalidEntityStatus,
		Message: msg,
		Entity:  entity,
		ID:      id,
	}
}

// EntityInUse el borrado está bloqueado porque la entidad tiene referencias; se debe archivar.
func EntityInUse(entity string, id int64) error {
	return &Error{
		Kind:    ErrEntityInUse,
		Message: fmt.Sprintf("%s con ID %d está en uso y no puede eliminarse; archívelo", entity, id),
		Entity:  entity,
		ID:      id,
	}
}

// InsufficientBalanceError el movimiento dejaría el saldo de (recurso, unidad) en negativo.
type InsufficientBalanceError struct {
	ResourceID      int64
	UnitOfMeasureID int64
	Required        decimal.Decimal
	Available       decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente (recurso %d, unidad %d): requerido %s, disponible %s",
		e.ResourceID, e.UnitOfMeasureID, e.Required.String(), e.Available.String())
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientBalance).
func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// InsufficientBalance construye el error de saldo insuficiente.
func InsufficientBalance(resourceID, unitID int64, required, available decimal.Decimal) error {
	return &InsufficientBalanceError{
		ResourceID:      resourceID,
		UnitOfMeasureID: unitID,
		Required:        required,
		Available:       available,
	}
}
