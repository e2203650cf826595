package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificaciones MPAA (tipo mpaa_rating en dvdrental).
var Ratings = []string{"G", "PG", "PG-13", "R", "NC-17"}

// DefaultRating clasificación asignada cuando no se informa.
const DefaultRating = "G"

// Film película del catálogo (tabla film).
type Film struct {
	ID              int64
	Title           string
	Description     *string
	ReleaseYear     *int
	LanguageID      int64
	RentalDuration  int
	RentalRate      decimal.Decimal
	Length          *int
	ReplacementCost decimal.Decimal
	Rating          *string
	SpecialFeatures []string
	LastUpdate      time.Time
}

// ValidRating indica si r es una clasificación MPAA válida.
func ValidRating(r string) bool {
	for _, v := range Ratings {
		if v == r {
			return true
		}
	}
	return false
}

// FilmFilter filtros y paginación del listado de películas.
type FilmFilter struct {
	Search     string // ILIKE sobre title y description
	CategoryID int64  // 0 = todas
	Limit      int
	Offset     int
}
