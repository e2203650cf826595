package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilmListQuery filtros del listado de películas.
type FilmListQuery struct {
	PageRequest
	Search string `query:"search"`
}

// CreateFilmRequest entrada para crear una película.
type CreateFilmRequest struct {
	Title           string           `json:"title" validate:"required,max=255"`
	Description     *string          `json:"description"`
	ReleaseYear     *int             `json:"release_year" validate:"omitempty,gte=1901,lte=2155"`
	LanguageID      int64            `json:"language_id" validate:"required,gte=1"`
	RentalDuration  int              `json:"rental_duration" validate:"required,gte=1"`
	RentalRate      *decimal.Decimal `json:"rental_rate" validate:"required"`
	Length          *int             `json:"length" validate:"omitempty,gte=0"`
	ReplacementCost *decimal.Decimal `json:"replacement_cost" validate:"required"`
	Rating          *string          `json:"rating" validate:"omitempty,oneof=G PG PG-13 R NC-17"`
}

// UpdateFilmRequest actualización parcial: solo se aplican los campos presentes.
type UpdateFilmRequest struct {
	Title           *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description"`
	ReleaseYear     *int             `json:"release_year" validate:"omitempty,gte=1901,lte=2155"`
	LanguageID      *int64           `json:"language_id" validate:"omitempty,gte=1"`
	RentalDuration  *int             `json:"rental_duration" validate:"omitempty,gte=1"`
	RentalRate      *decimal.Decimal `json:"rental_rate"`
	Length          *int             `json:"length" validate:"omitempty,gte=0"`
	ReplacementCost *decimal.Decimal `json:"replacement_cost"`
	Rating          *string          `json:"rating" validate:"omitempty,oneof=G PG PG-13 R NC-17"`
}

// FilmListItem fila del listado de películas.
type FilmListItem struct {
	FilmID      int64           `json:"film_id"`
	Title       string          `json:"title"`
	ReleaseYear *int            `json:"release_year"`
	Rating      *string         `json:"rating"`
	RentalRate  decimal.Decimal `json:"rental_rate"`
}

// FilmResponse detalle de una película.
type FilmResponse struct {
	FilmID          int64           `json:"film_id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description"`
	ReleaseYear     *int            `json:"release_year"`
	LanguageID      int64           `json:"language_id"`
	RentalDuration  int             `json:"rental_duration"`
	RentalRate      decimal.Decimal `json:"rental_rate"`
	Length          *int            `json:"length"`
	ReplacementCost decimal.Decimal `json:"replacement_cost"`
	Rating          *string         `json:"rating"`
	SpecialFeatures []string        `json:"special_features,omitempty"`
	LastUpdate      time.Time       `json:"last_update"`
}

// FilmEnvelope respuesta {film} o {message, film}.
type FilmEnvelope struct {
	Message string       `json:"message,omitempty"`
	Film    FilmResponse `json:"film"`
}
