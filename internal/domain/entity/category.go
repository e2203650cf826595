package entity

import "time"

// CategoryNameMaxLen longitud máxima de category.name (varchar(25)).
const CategoryNameMaxLen = 25

// Category categoría de películas (tabla category).
type Category struct {
	ID         int64
	Name       string
	LastUpdate time.Time
}
