package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// BalanceHandler consulta y reportes del saldo.
type BalanceHandler struct {
	uc      *usecase.BalanceUseCase
	reports *usecase.ReportUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(uc *usecase.BalanceUseCase, reports *usecase.ReportUseCase) *BalanceHandler {
	return &BalanceHandler{uc: uc, reports: reports}
}

// List godoc
// @Summary      Consultar saldo
// @Tags         balance
// @Security     Bearer
// @Produce      json
// @Param        resource_ids  query  string  false  "IDs de recurso, separados por coma"
// @Param        unit_ids      query  string  false  "IDs de unidad, separados por coma"
// @Success      200  {object}  dto.ListResponse[dto.BalanceResponse]
// @Router       /api/balance [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	filter, err := balanceFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// PDF godoc
// @Summary      Reporte de saldo (PDF)
// @Tags         balance
// @Security     Bearer
// @Produce      application/pdf
// @Param        resource_ids  query  string  false  "IDs de recurso"
// @Param        unit_ids      query  string  false  "IDs de unidad"
// @Success      200  {file}  binary
// @Router       /api/balance/pdf [get]
func (h *BalanceHandler) PDF(c *fiber.Ctx) error {
	filter, err := balanceFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.BalancePDF(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out, snapshotName("pdf"), "application/pdf")
}

// ExportXML godoc
// @Summary      Exportar saldo (XML)
// @Tags         balance
// @Security     Bearer
// @Produce      application/xml
// @Param        resource_ids  query  string  false  "IDs de recurso"
// @Param        unit_ids      query  string  false  "IDs de unidad"
// @Success      200  {file}  binary
// @Router       /api/balance/export.xml [get]
func (h *BalanceHandler) ExportXML(c *fiber.Ctx) error {
	filter, err := balanceFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reports.BalanceXML(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, out, snapshotName("xml"), fiber.MIMEApplicationXMLCharsetUTF8)
}

func snapshotName(ext string) string {
	return fmt.Sprintf("saldo_%s.%s", time.Now().Format("20060102_150405"), ext)
}
