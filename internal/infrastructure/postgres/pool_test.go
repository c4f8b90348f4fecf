package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/pkg/config"
)

func baseDBConfig() config.DBConfig {
	return config.DBConfig{
		Host: "db.internal", Port: 5432, User: "app", Password: "secret",
		DBName: "logistica", SSLMode: "disable",
	}
}

func TestPoolConfig_AplicaAjustesDelPool(t *testing.T) {
	cfg := baseDBConfig()
	cfg.MaxConns = 12
	cfg.MinConns = 3
	cfg.MaxConnLifetime = 45 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 20 * time.Second

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 45*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, 20*time.Second, pc.HealthCheckPeriod)
	assert.NotNil(t, pc.AfterConnect, "el codec decimal se registra en cada conexión")
	assert.Equal(t, "db.internal", pc.ConnConfig.Host, "sin ForceIPv4 el host no se resuelve")
	assert.Equal(t, "logistica", pc.ConnConfig.Database)
}

func TestPoolConfig_MinConnsMayorQueMaxSeIgnora(t *testing.T) {
	cfg := baseDBConfig()
	cfg.MaxConns = 2
	cfg.MinConns = 5

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(2), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestPoolConfig_ForceIPv4ConIPLiteral(t *testing.T) {
	cfg := baseDBConfig()
	cfg.Host = "127.0.0.1"
	cfg.ForceIPv4 = true

	pc, err := PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5432), pc.ConnConfig.Port)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://app:%zz@db/logistica"}

	_, err := PoolConfig(cfg)
	assert.Error(t, err)
}

func TestWithIPv4Host_SinCambiosSiNoEsURL(t *testing.T) {
	dsn := "host=db user=app dbname=logistica"
	assert.Equal(t, dsn, withIPv4Host(dsn))
}

func TestLookupIPv4_RechazaIPv6Literal(t *testing.T) {
	_, err := lookupIPv4(t.Context(), "::1")
	assert.Error(t, err)

	ip, err := lookupIPv4(t.Context(), "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)
}
