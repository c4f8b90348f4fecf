package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/pkg/config"
)

// NewPool abre el pool de PostgreSQL y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// PoolConfig arma la configuración del pool sin conectar.
//
// Todas las conexiones registran el codec NUMERIC <-> decimal.Decimal, del que
// dependen montos COD y tarifas. Con ForceIPv4 el host se resuelve a IPv4
// tanto en el DSN como en cada dial.
func PoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = withIPv4Host(dsn)
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.ForceIPv4 {
		pc.ConnConfig.DialFunc = dialIPv4
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && cfg.MinConns <= int(pc.MaxConns) {
		pc.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		pc.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// ── IPv4 ──────────────────────────────────────────────────────────────────────

// dialIPv4 conecta por tcp4 cuando el host tiene IPv4; si no, dial normal.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := lookupIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// withIPv4Host reemplaza el host de un DSN en formato URL por su IPv4.
// Un DSN que no es URL o un host sin IPv4 se devuelven sin cambios.
func withIPv4Host(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	ip, err := lookupIPv4(context.Background(), u.Hostname())
	if err != nil {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

// publicResolver consulta 8.8.8.8 directamente: el DNS de algunos contenedores
// solo devuelve registros AAAA.
var publicResolver = &net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "udp", "8.8.8.8:53")
	},
}

func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s es IPv6", host)
		}
		return host, nil
	}
	for _, r := range []*net.Resolver{net.DefaultResolver, publicResolver} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err == nil && len(ips) > 0 {
			return ips[0].String(), nil
		}
	}
	return "", fmt.Errorf("%s sin dirección IPv4", host)
}
