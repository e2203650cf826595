package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
)

// RentalHandler alquileres (solo staff y admin).
type RentalHandler struct {
	uc *usecase.RentalUseCase
}

func NewRentalHandler(uc *usecase.RentalUseCase) *RentalHandler {
	return &RentalHandler{uc: uc}
}

// List godoc
// @Summary      Listar alquileres
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  int  false  "Filtrar por cliente"
// @Param        staff_id     query  int  false  "Filtrar por empleado"
// @Param        page         query  int  false  "Página"            default(1)
// @Param        page_size    query  int  false  "Tamaño de página"  default(20)
// @Success      200  {object}  dto.PageResponse[dto.RentalListItem]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/rentals [get]
func (h *RentalHandler) List(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	q := dto.RentalListQuery{PageRequest: page}
	if q.CustomerID, err = queryID(c, "customer_id"); err != nil {
		return respondError(c, err)
	}
	if q.StaffID, err = queryID(c, "staff_id"); err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pageResponse(c, res, page))
}

// Get godoc
// @Summary      Obtener alquiler
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del alquiler"
// @Success      200  {object}  dto.RentalEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [get]
func (h *RentalHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RentalEnvelope{Rental: *out})
}

// Create godoc
// @Summary      Registrar alquiler
// @Description  Rechaza el alta si el ítem de inventario tiene un alquiler sin devolver.
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRentalRequest  true  "inventory_id, customer_id, staff_id"
// @Success      201   {object}  dto.RentalEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/rentals [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
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
// @Summary      Actualizar alquiler (parcial)
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del alquiler"
// @Param        body  body  dto.UpdateRentalRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.RentalEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [put]
func (h *RentalHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateRentalRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Registrar devolución
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del alquiler"
// @Success      200  {object}  dto.RentalEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/return [post]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Return(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar alquiler
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del alquiler"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id} [delete]
func (h *RentalHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Alquiler eliminado correctamente."})
}
