package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
)

// AnalyticsHandler maneja los reportes de rentabilidad (procedimientos almacenados).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// MostProfitableCategories godoc
// @Summary      Categorías más rentables
// @Description  Ingresos, alquileres y películas por categoría. Sin year agrupa por todos los años.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año"
// @Success      200  {object}  dto.CountResponse[dto.CategoryRevenueResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/most-profitable-categories [get]
func (h *AnalyticsHandler) MostProfitableCategories(c *fiber.Ctx) error {
	year, err := queryNonNegative(c, "year")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.MostProfitableCategories(c.UserContext(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MostProfitableFilms godoc
// @Summary      Películas más rentables
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "Año"
// @Param        limit  query  int  false  "Máximo de filas (1..1000)"  default(100)
// @Success      200  {object}  dto.CountResponse[dto.FilmRevenueResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/most-profitable-films [get]
func (h *AnalyticsHandler) MostProfitableFilms(c *fiber.Ctx) error {
	year, err := queryNonNegative(c, "year")
	if err != nil {
		return respondError(c, err)
	}
	limit, err := queryNonNegative(c, "limit")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.MostProfitableFilms(c.UserContext(), year, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
