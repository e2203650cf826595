package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/dvdrental-api/internal/application/auth"
	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/application/usecase"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/cache"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/dvdrental-api/internal/infrastructure/pdf"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/dvdrental-api/internal/interfaces/http"
	"github.com/jhoicas/dvdrental-api/pkg/config"
	"github.com/jhoicas/dvdrental-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Correo: SMTP con circuit breaker, o solo log si SMTP_DISABLED=true
	var mailer ports.Mailer
	if cfg.SMTP.Disabled {
		mailer = mail.NewLogMailer(log.Component("mailer").Zerolog())
		log.Warn().Msg("SMTP deshabilitado: los correos solo se registran en el log")
	} else {
		mailer = mail.NewSMTPMailer(cfg.SMTP, log.Component("mailer").Zerolog())
	}

	// Caché de reportes (opcional)
	var reportCache ports.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Redis no disponible, reportes sin caché")
	case redisClient != nil:
		defer redisClient.Close()
		reportCache = cache.NewRedisCache(redisClient, "dvdrental:")
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes en Redis")
	}

	// Eventos de dominio (opcional)
	var events ports.EventPublisher = ports.NopPublisher{}
	if cfg.Queue.URL != "" {
		publisher, err := queue.NewRabbitPublisher(cfg.Queue.URL, cfg.Queue.Exchange, log.Component("queue").Zerolog())
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos deshabilitados")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	authUC := auth.NewAuthUseCase(repos.Users, txRunner, mailer, auth.Config{
		Secret:              cfg.JWT.Secret,
		Issuer:              cfg.JWT.Issuer,
		AccessTTL:           time.Duration(cfg.JWT.AccessMinutes) * time.Minute,
		RefreshTTL:          time.Duration(cfg.JWT.RefreshMinutes) * time.Minute,
		ActivationMaxAge:    cfg.JWT.ActivationMaxAge,
		PasswordResetMaxAge: cfg.JWT.PasswordResetMaxAge,
		FrontendURL:         cfg.App.FrontendURL,
		SiteName:            cfg.App.SiteName,
	}, log.Component("auth").Zerolog())

	filmUC := usecase.NewFilmUseCase(repos.Films, repos.Categories, txRunner)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories, txRunner)
	rentalUC := usecase.NewRentalUseCase(repos.Rentals, txRunner, events, log.Component("rentals").Zerolog())
	paymentUC := usecase.NewPaymentUseCase(
		repos.Payments, txRunner, infrapdf.NewReceiptGenerator(), events,
		cfg.App.SiteName, log.Component("payments").Zerolog(),
	)
	analyticsUC := usecase.NewAnalyticsUseCase(
		postgres.NewAnalyticsRepository(pool), reportCache, cfg.Redis.TTL, log.Component("analytics").Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DVD Rental API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "database": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "database": "up"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		FilmUC:        filmUC,
		CategoryUC:    categoryUC,
		RentalUC:      rentalUC,
		PaymentUC:     paymentUC,
		AnalyticsUC:   analyticsUC,
		JWTSecret:     cfg.JWT.Secret,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
