// seed crea el usuario administrador inicial y el documento de configuración.
//
// Uso: go run ./cmd/seed
// Variables: SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD, SEED_ADMIN_FIRST_NAME.
// Es idempotente: si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistica-api/pkg/config"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// La primera lectura inserta la configuración por defecto.
	settings := usecase.NewSettingsUseCase(postgres.NewSettingsRepository(pool), nil, 0, log)
	st, err := settings.Current(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("crear configuración")
	}
	log.Info().Str("system_name", st.SystemName).Msg("configuración lista")

	in := dto.CreateUserRequest{
		FirstName: envOrDefault("SEED_ADMIN_FIRST_NAME", "Admin"),
		Email:     envOrDefault("SEED_ADMIN_EMAIL", "admin@logistica.local"),
		Password:  envOrDefault("SEED_ADMIN_PASSWORD", "Admin12345!"),
		Role:      entity.RoleAdmin,
	}
	if err := in.Validate(); err != nil {
		log.Fatal().Err(err).Msg("datos del administrador inválidos")
	}
	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	admin, err := users.Create(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", in.Email).Msg("el administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
