package dto

import "math"

// Paginación por defecto y máxima de los listados.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage última página cuyo offset cabe en un entero de 32 bits con cualquier page_size.
	MaxPage = math.MaxInt32/MaxPageSize + 1
)

// PageRequest paginación por número de página.
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// Normalize aplica defaults y límites: 1<=page<=MaxPage, 1<=page_size<=MaxPageSize.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset fila inicial de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse listado paginado: next/previous son rutas relativas con los mismos filtros.
type PageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ListResult resultado de un caso de uso de listado, antes de construir los enlaces.
type ListResult[T any] struct {
	Items []T
	Total int
}

// CountResponse respuesta de reportes sin paginación.
type CountResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
