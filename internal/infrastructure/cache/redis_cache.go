package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
)

const estoqueKey = "gestor-compras:estoque"

// RedisEstoqueCache implementa EstoqueCache sobre o Redis
type RedisEstoqueCache struct {
	client *redis.Client
}

// NewRedisEstoqueCache cria o cache conectado ao endereço informado
func NewRedisEstoqueCache(addr, password string, db int) *RedisEstoqueCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisEstoqueCache{client: client}
}

// Ping verifica a conexão com o Redis
func (c *RedisEstoqueCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close encerra a conexão
func (c *RedisEstoqueCache) Close() error {
	return c.client.Close()
}

func (c *RedisEstoqueCache) Get(ctx context.Context) ([]*stock.ItemEstoque, bool, error) {
	val, err := c.client.Get(ctx, estoqueKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var itens []*stock.ItemEstoque
	if err := json.Unmarshal([]byte(val), &itens); err != nil {
		return nil, false, err
	}
	return itens, true, nil
}

func (c *RedisEstoqueCache) Set(ctx context.Context, itens []*stock.ItemEstoque, ttl time.Duration) error {
	payload, err := json.Marshal(itens)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, estoqueKey, payload, ttl).Err()
}

func (c *RedisEstoqueCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, estoqueKey).Err()
}
