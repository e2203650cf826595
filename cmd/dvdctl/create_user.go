package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/dvdrental-api/internal/application/auth"
	"github.com/jhoicas/dvdrental-api/internal/application/dto"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/mail"
	"github.com/jhoicas/dvdrental-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dvdrental-api/pkg/validation"
)

var newUser dto.CreateUserRequest

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Crea un usuario activo (admin, staff o customer)",
	Long: `Crea un usuario ya activado, sin correo de activación. Pensado para el primer admin.

Examples:
  dvdctl create-user --username root --email root@example.com --password 'Clave#Segura1' --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verr := validation.ValidateStruct(newUser); verr != nil {
			return verr
		}

		ctx := cmd.Context()
		cfg, log, pool, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		repos := postgres.NewRepos(pool)
		uc := auth.NewAuthUseCase(repos.Users, postgres.NewTxRunner(pool), mail.NewLogMailer(log.Zerolog()), auth.Config{
			Secret:   cfg.JWT.Secret,
			Issuer:   cfg.JWT.Issuer,
			SiteName: cfg.App.SiteName,
		}, log.Zerolog())

		user, err := uc.CreateUser(ctx, newUser)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Usuario %q creado (id %d, rol %s).\n", user.Username, user.ID, user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd)

	f := createUserCmd.Flags()
	f.StringVar(&newUser.Username, "username", "", "Nombre de usuario")
	f.StringVar(&newUser.Email, "email", "", "Email")
	f.StringVar(&newUser.Password, "password", "", "Contraseña (debe cumplir la política de seguridad)")
	f.StringVar(&newUser.Role, "role", "admin", "Rol: admin, staff o customer")
	f.StringVar(&newUser.FirstName, "first-name", "", "Nombre")
	f.StringVar(&newUser.LastName, "last-name", "", "Apellido")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
