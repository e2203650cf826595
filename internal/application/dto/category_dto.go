package dto

import "time"

// CategoryRequest entrada de alta y modificación de categoría.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=25"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	CategoryID int64     `json:"category_id"`
	Name       string    `json:"name"`
	LastUpdate time.Time `json:"last_update"`
}

// CategoryEnvelope respuesta {category} o {message, category}.
type CategoryEnvelope struct {
	Message  string           `json:"message,omitempty"`
	Category CategoryResponse `json:"category"`
}
