package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "logistica-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "₹", cfg.Report.CurrencySymbol)
	assert.Equal(t, "en-IN", cfg.Report.Locale)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR la caché queda desactivada")
	assert.Equal(t, int64(5*1024*1024), cfg.Import.MaxBytes())
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.Equal(t, time.Minute, cfg.DB.HealthCheckPeriod)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_AjustesDelPool(t *testing.T) {
	t.Setenv("DB_MIN_CONNS", "4")
	t.Setenv("DB_MAX_CONN_IDLE_MINUTES", "10")
	t.Setenv("DB_HEALTH_CHECK_SECONDS", "15")
	t.Setenv("DB_FORCE_IPV4", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.DB.MinConns)
	assert.Equal(t, 10*time.Minute, cfg.DB.MaxConnIdleTime)
	assert.Equal(t, 15*time.Second, cfg.DB.HealthCheckPeriod)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("IMPORT_MAX_ROWS", "10")
	t.Setenv("REPORT_CURRENCY_SYMBOL", "$")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10, cfg.Import.MaxRows)
	assert.Equal(t, "$", cfg.Report.CurrencySymbol)
}

func TestLoad_ProductionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err, "production sin JWT_SECRET debe fallar")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "logistica", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/logistica?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}
