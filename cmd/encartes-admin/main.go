// encartes-admin tareas de operación fuera del servidor HTTP: aplicar
// migraciones y crear el primer usuario administrador.
//
// Uso:
//
//	go run ./cmd/encartes-admin migrate
//	go run ./cmd/encartes-admin create-admin --email admin@mercado.com.br --name "Admin" --password secreto
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/encartes-api/internal/application/auth"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/encartes-api/pkg/config"
	"github.com/jhoicas/encartes-api/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "encartes-admin",
		Short:         "Tareas administrativas de encartes-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newCreateAdminCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
				applied, err := postgres.Migrate(ctx, pool)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					log.Info().Msg("sin migraciones pendientes")
					return nil
				}
				log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
				return nil
			})
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea un usuario con rol admin y email ya verificado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if len(password) < 6 {
				return errors.New("--password debe tener al menos 6 caracteres")
			}
			if len(strings.TrimSpace(name)) < 3 {
				return errors.New("--name debe tener al menos 3 caracteres")
			}
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
				users := postgres.NewUserRepository(pool)
				existing, err := users.GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("ya existe un usuario con email %s", email)
				}
				hash, err := auth.HashPassword(password)
				if err != nil {
					return err
				}
				now := time.Now()
				user := &entity.User{
					ID:            uuid.New().String(),
					Email:         email,
					PasswordHash:  hash,
					Name:          strings.TrimSpace(name),
					EmailVerified: true,
					Role:          entity.RoleAdmin,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := users.Create(ctx, user); err != nil {
					return err
				}
				log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("administrador creado")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&name, "name", "", "nombre del administrador")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (mínimo 6 caracteres)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// withPool carga la configuración, abre el pool y ejecuta fn.
func withPool(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("admin")

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	return fn(ctx, pool, log)
}
