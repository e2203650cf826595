package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
)

// FilmHandler CRUD de películas.
type FilmHandler struct {
	uc *usecase.FilmUseCase
}

// NewFilmHandler construye el handler.
func NewFilmHandler(uc *usecase.FilmUseCase) *FilmHandler {
	return &FilmHandler{uc: uc}
}

// List godoc
// @Summary      Listar películas
// @Tags         films
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Texto en título o descripción"
// @Param        page       query  int     false  "Página"             default(1)
// @Param        page_size  query  int     false  "Tamaño de página"   default(20)
// @Success      200  {object}  dto.PageResponse[dto.FilmListItem]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/films [get]
func (h *FilmHandler) List(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	q := dto.FilmListQuery{PageRequest: page, Search: c.Query("search")}
	res, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageResponse(c, res, page))
}

// ListByCategory godoc
// @Summary      Películas de una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id         path   int  true   "ID de la categoría"
// @Param        page       query  int  false  "Página"            default(1)
// @Param        page_size  query  int  false  "Tamaño de página"  default(20)
// @Success      200  {object}  dto.PageResponse[dto.FilmListItem]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/films [get]
func (h *FilmHandler) ListByCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.ListByCategory(c.UserContext(), id, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageResponse(c, res, page))
}

// Get godoc
// @Summary      Obtener película
// @Tags         films
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la película"
// @Success      200  {object}  dto.FilmEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/films/{id} [get]
func (h *FilmHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FilmEnvelope{Film: *out})
}

// Create godoc
// @Summary      Crear película
// @Tags         films
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFilmRequest  true  "Datos de la película"
// @Success      201   {object}  dto.FilmEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/films [post]
func (h *FilmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFilmRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar película (parcial)
// @Tags         films
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la película"
// @Param        body  body  dto.UpdateFilmRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.FilmEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/films/{id} [put]
func (h *FilmHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateFilmRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar película
// @Tags         films
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la película"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/films/{id} [delete]
func (h *FilmHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Película eliminada correctamente."})
}
