package entity

import "github.com/shopspring/decimal"

// CategoryRevenue fila de get_most_profitable_categories_by_year.
type CategoryRevenue struct {
	CategoryID   int64
	CategoryName string
	Year         int
	TotalRevenue decimal.Decimal
	RentalCount  int64
	FilmCount    int64
}

// FilmRevenue fila de get_most_profitable_films_by_year.
type FilmRevenue struct {
	FilmID        int64
	Title         string
	Year          int
	TotalRevenue  decimal.Decimal
	RentalCount   int64
	CategoryNames []string
}
