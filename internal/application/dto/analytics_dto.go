package dto

import "github.com/shopspring/decimal"

// Límites del reporte de películas más rentables.
const (
	DefaultFilmsLimit = 100
	MaxFilmsLimit     = 1000
)

// CategoryRevenueResponse fila del reporte de categorías más rentables.
type CategoryRevenueResponse struct {
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Year         int             `json:"year"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	RentalCount  int64           `json:"rental_count"`
	FilmCount    int64           `json:"film_count"`
}

// FilmRevenueResponse fila del reporte de películas más rentables.
type FilmRevenueResponse struct {
	FilmID        int64           `json:"film_id"`
	Title         string          `json:"title"`
	Year          int             `json:"year"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RentalCount   int64           `json:"rental_count"`
	CategoryNames []string        `json:"category_names"`
}
