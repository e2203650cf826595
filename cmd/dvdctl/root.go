package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/dvdrental-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dvdrental-api/pkg/config"
	"github.com/jhoicas/dvdrental-api/pkg/logger"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dvdctl",
	Short: "Administración de dvdrental-api",
	Long: `dvdctl agrupa las tareas de operación de la API:

  dvdctl migrate                 # crea las tablas propias (app_user)
  dvdctl create-user --role admin --username root --email root@example.com --password '...'

La conexión sale de DATABASE_URL / DB_* salvo que se indique --db.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "URL de conexión a PostgreSQL (por defecto la de la configuración)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log detallado")
}

// bootstrap carga la configuración y abre el pool. El llamador cierra el pool.
func bootstrap(ctx context.Context) (*config.Config, *logger.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if dbURL != "" {
		cfg.DB.DatabaseURL = dbURL
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: os.Stderr})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return cfg, log, pool, nil
}
