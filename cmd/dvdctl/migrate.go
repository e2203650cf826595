package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/dvdrental-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Crea las tablas propias de la API",
	Long: `Crea app_user y sus índices si no existen. Es idempotente.

El resto del esquema dvdrental (film, rental, payment...) y los procedimientos
de rentabilidad se asumen cargados desde el dump de la base.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, log, pool, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		log.Debug().Msg("migración aplicada")
		fmt.Fprintln(cmd.OutOrStdout(), "Migración aplicada.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
