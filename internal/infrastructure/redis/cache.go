// Package redis implementa ports.Cache sobre Redis con valores JSON.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Logistica-api/internal/application/ports"
)

var _ ports.Cache = (*Cache)(nil)

// Cache adaptador de caché. Todas las claves llevan el prefijo configurado.
type Cache struct {
	client *goredis.Client
	prefix string
}

// NewCache crea el cliente. No verifica la conexión; usar Ping.
func NewCache(addr, password string, db int, prefix string) *Cache {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// Get carga el JSON guardado en dest. found=false si la clave no existe.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return true, nil
}

// Set guarda value como JSON. ttl <= 0 significa sin expiración.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

// Delete elimina las claves indicadas; las inexistentes se ignoran.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// DeleteByPrefix elimina todas las claves que empiezan con prefix.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Ping verifica la conexión.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close libera el cliente.
func (c *Cache) Close() error {
	return c.client.Close()
}
