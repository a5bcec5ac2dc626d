package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeEntityNotFound      = "ENTITY_NOT_FOUND"
	CodeDuplicateEntity     = "DUPLICATE_ENTITY"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeEntityInUse         = "ENTITY_IN_USE"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeBusinessRule        = "BUSINESS_RULE"
	CodeValidation          = "VALIDATION"
	CodeInvalidBody         = "INVALID_BODY"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternal            = "INTERNAL"
)

// requestError error de entrada detectado en la capa HTTP (cuerpo, query o path).
type requestError struct {
	code    string
	message string
	details map[string]any
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

// writeError traduce un error de la aplicación a status HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message, Details: reqErr.details}
	}

	var ibe *domain.InsufficientBalanceError
	if errors.As(err, &ibe) {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    CodeInsufficientBalance,
			Message: ibe.Error(),
			Details: map[string]any{
				"resource_id":        ibe.ResourceID,
				"unit_of_measure_id": ibe.UnitOfMeasureID,
				"required":           ibe.Required.String(),
				"available":          ibe.Available.String(),
			},
		}
	}

	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeEntityNotFound, Message: msg}
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeDuplicateEntity, Message: msg}
	case errors.Is(err, domain.ErrInvalidEntityStatus):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidStatus, Message: msg}
	case errors.Is(err, domain.ErrEntityInUse):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: CodeEntityInUse, Message: msg}
	case errors.Is(err, domain.ErrInvalidArgument):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidArgument, Message: msg}
	case errors.Is(err, domain.ErrBusinessRule):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: CodeBusinessRule, Message: msg}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: msg}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: msg}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: CodeInternal, Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
}

// ErrorHandler manejador global de Fiber: errores no atendidos por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeEntityNotFound
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest:
			code = CodeInvalidArgument
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
