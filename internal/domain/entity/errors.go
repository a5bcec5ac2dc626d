package entity

import "github.com/jhoicas/almacen-api/internal/domain"

func errInvalidLineQuantity() error {
	return domain.InvalidArgument("la cantidad debe ser positiva")
}

func errTransition(msg string) error {
	return domain.BusinessRule(msg)
}
