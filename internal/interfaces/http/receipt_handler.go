package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ReceiptHandler documentos de ingreso.
type ReceiptHandler struct {
	uc      *inventory.ReceiptUseCase
	reports *usecase.ReportUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *inventory.ReceiptUseCase, reports *usecase.ReportUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar documento de ingreso
// @Description  Crea el documento y suma sus líneas al saldo en la misma transacción.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "Documento"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento de ingreso
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar documentos de ingreso
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        date_from     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to       query  string  false  "Hasta, inclusive (YYYY-MM-DD)"
// @Param        numbers       query  string  false  "Números, separados por coma"
// @Param        resource_ids  query  string  false  "IDs de recurso, separados por coma"
// @Param        unit_ids      query  string  false  "IDs de unidad, separados por coma"
// @Success      200  {object}  dto.ListResponse[dto.ReceiptResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	filter, err := documentFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// Update godoc
// @Summary      Editar documento de ingreso
// @Description  Revierte las líneas anteriores y aplica las nuevas; falla si el saldo quedaría negativo.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.ReceiptRequest  true  "Documento"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReceiptRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento de ingreso
// @Tags         receipts
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      PDF del documento de ingreso
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) PDF(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, filename, err := h.reports.ReceiptPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out, filename, "application/pdf")
}

// sendFile responde con un adjunto descargable.
func sendFile(c *fiber.Ctx, body []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Attachment(filename)
	return c.Send(body)
}
