package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/dvdrental-api/internal/application/auth"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	FilmUC      *usecase.FilmUseCase
	CategoryUC  *usecase.CategoryUseCase
	RentalUC    *usecase.RentalUseCase
	PaymentUC   *usecase.PaymentUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	JWTSecret   string
	// AuthRateLimit peticiones por minuto e IP a los endpoints públicos de auth. 0 = sin límite.
	AuthRateLimit int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/", APIRoot)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	if deps.AuthRateLimit > 0 {
		authGroup.Use(limiter.New(limiter.Config{
			Max:        deps.AuthRateLimit,
			Expiration: time.Minute,
		}))
	}
	authGroup.Get("/", authHandler.Root)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/activate", authHandler.Activate)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	authGroup.Post("/token/refresh", authHandler.Refresh)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(RoleAdmin, RoleStaff)

	// Films: lectura para cualquier autenticado, escritura staff/admin
	filmHandler := NewFilmHandler(deps.FilmUC)
	films := protected.Group("/films")
	films.Get("/", filmHandler.List)
	films.Get("/:id", filmHandler.Get)
	films.Post("/", writers, filmHandler.Create)
	films.Put("/:id", writers, filmHandler.Update)
	films.Patch("/:id", writers, filmHandler.Update)
	films.Delete("/:id", writers, filmHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Get("/:id/films", filmHandler.ListByCategory)
	categories.Post("/", writers, categoryHandler.Create)
	categories.Put("/:id", writers, categoryHandler.Update)
	categories.Patch("/:id", writers, categoryHandler.Update)
	categories.Delete("/:id", writers, categoryHandler.Delete)

	// Rentals, payments y analytics: solo staff/admin
	rentalHandler := NewRentalHandler(deps.RentalUC)
	rentals := protected.Group("/rentals", writers)
	rentals.Get("/", rentalHandler.List)
	rentals.Post("/", rentalHandler.Create)
	rentals.Get("/:id", rentalHandler.Get)
	rentals.Put("/:id", rentalHandler.Update)
	rentals.Patch("/:id", rentalHandler.Update)
	rentals.Delete("/:id", rentalHandler.Delete)
	rentals.Post("/:id/return", rentalHandler.Return)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := protected.Group("/payments", writers)
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.Get)
	payments.Put("/:id", paymentHandler.Update)
	payments.Patch("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)
	payments.Get("/:id/receipt", paymentHandler.Receipt)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics := protected.Group("/analytics", writers)
	analytics.Get("/most-profitable-categories", analyticsHandler.MostProfitableCategories)
	analytics.Get("/most-profitable-films", analyticsHandler.MostProfitableFilms)
}
