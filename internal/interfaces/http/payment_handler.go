package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
)

// PaymentHandler pagos (solo staff y admin).
type PaymentHandler struct {
	uc *usecase.PaymentUseCase
}

func NewPaymentHandler(uc *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  int  false  "Filtrar por cliente"
// @Param        staff_id     query  int  false  "Filtrar por empleado"
// @Param        page         query  int  false  "Página"            default(1)
// @Param        page_size    query  int  false  "Tamaño de página"  default(20)
// @Success      200  {object}  dto.PageResponse[dto.PaymentListItem]
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	page, err := pageRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	q := dto.PaymentListQuery{PageRequest: page}
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
// @Summary      Obtener pago
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {object}  dto.PaymentEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PaymentEnvelope{Payment: *out})
}

// Create godoc
// @Summary      Registrar pago
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "customer_id, staff_id, amount"
// @Success      201   {object}  dto.PaymentEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
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
// @Summary      Actualizar pago (parcial)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del pago"
// @Param        body  body  dto.UpdatePaymentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PaymentEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePaymentRequest
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
// @Summary      Eliminar pago
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Pago eliminado correctamente."})
}

// Receipt godoc
// @Summary      Comprobante PDF del pago
// @Tags         payments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pago"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="recibo-%d.pdf"`, id))
	return c.Send(pdf)
}
