package http

import "github.com/gofiber/fiber/v2"

// APIRoot godoc
// @Summary      Índice de la API
// @Tags         root
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api [get]
func APIRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "DVD Rental API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": fiber.Map{
			"authentication": "/api/auth",
			"films":          "/api/films",
			"categories":     "/api/categories",
			"payments":       "/api/payments",
			"rentals":        "/api/rentals",
			"analytics":      "/api/analytics",
			"documentation":  "/docs",
			"metrics":        "/metrics",
		},
		"note": "Endpoint público. El resto requiere Bearer token.",
	})
}
