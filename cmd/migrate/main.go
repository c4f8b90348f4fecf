package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistica-api/pkg/config"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

// Uso: go run ./cmd/migrate [-cmd up|status|down]
func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "up | status | down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch *cmd {
	case "up":
		err = postgres.Migrate(ctx, db)
	case "status":
		err = postgres.MigrationStatus(ctx, db)
	case "down":
		err = postgres.Rollback(ctx, db)
	default:
		log.Fatal().Str("cmd", *cmd).Msg("comando desconocido (use up, status o down)")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
