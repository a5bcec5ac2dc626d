package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre JSON del campo (resources[0].quantity).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parsea el cuerpo JSON en out y aplica las reglas `validate`.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest(CodeInvalidBody, "cuerpo inválido: "+err.Error())
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return badRequest(CodeValidation, err.Error())
		}
		details := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			details[fieldPath(fe)] = describe(fe)
		}
		return &requestError{code: CodeValidation, message: "datos de entrada inválidos", details: details}
	}
	return nil
}

// fieldPath quita el nombre del struct raíz: "ReceiptRequest.resources[0].quantity" -> "resources[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "max":
		return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
	case "min":
		return fmt.Sprintf("debe tener al menos %s elementos", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
