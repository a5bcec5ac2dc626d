package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ResourceHandler maneja las peticiones HTTP del catálogo de recursos.
type ResourceHandler struct {
	uc *usecase.ResourceUseCase
}

// NewResourceHandler construye el handler.
func NewResourceHandler(uc *usecase.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear recurso
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateResourceRequest  true  "Datos"
// @Success      201   {object}  dto.ResourceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resources [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResourceRequest
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
// @Summary      Obtener recurso por ID
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ResourceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resources/{id} [get]
func (h *ResourceHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar recursos
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        include_archived  query  bool  false  "Incluir archivados"
// @Success      200  {object}  dto.ListResponse[dto.ResourceResponse]
// @Router       /api/resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	includeArchived, err := queryBool(c, "include_archived")
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.List(c.UserContext(), includeArchived)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(items))
}

// Update godoc
// @Summary      Actualizar recurso
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateResourceRequest  true  "Datos"
// @Success      200   {object}  dto.ResourceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resources/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateResourceRequest
	if err := bind(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar recurso
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ResourceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/resources/{id}/archive [put]
func (h *ResourceHandler) Archive(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Archive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar recurso archivado
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ResourceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/resources/{id}/restore [put]
func (h *ResourceHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Restore(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar recurso (solo si no está en uso)
// @Tags         resources
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
