package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ===== Receipts =====

// ReceiptSink records completed orders and lists the most recent first.
type ReceiptSink interface {
	Record(ctx context.Context, o Order) error
	Recent(ctx context.Context, n int) ([]Order, error)
}

// MemoryReceipts keeps up to keep orders in process.
type MemoryReceipts struct {
	mu     sync.RWMutex
	orders []Order
	keep   int
}

func NewMemoryReceipts(keep int) *MemoryReceipts {
	return &MemoryReceipts{keep: keep}
}

func (m *MemoryReceipts) Record(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]Order{o}, m.orders...)
	if len(m.orders) > m.keep {
		m.orders = m.orders[:m.keep]
	}
	return nil
}

func (m *MemoryReceipts) Recent(_ context.Context, n int) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n <= 0 || n > len(m.orders) {
		n = len(m.orders)
	}
	out := make([]Order, n)
	copy(out, m.orders[:n])
	return out, nil
}

// RedisReceipts pushes JSON orders onto a capped Redis list.
type RedisReceipts struct {
	client *redis.Client
	key    string
	keep   int
}

// NewRedisReceipts connects to redisURL and checks the connection.
func NewRedisReceipts(ctx context.Context, redisURL, key string, keep int) (*RedisReceipts, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisReceipts{client: client, key: key, keep: keep}, nil
}

func (r *RedisReceipts) Record(ctx context.Context, o Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", o.ID, err)
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, int64(r.keep-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record order %s: %w", o.ID, err)
	}
	return nil
}

func (r *RedisReceipts) Recent(ctx context.Context, n int) ([]Order, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n - 1)
	}
	raw, err := r.client.LRange(ctx, r.key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	orders := make([]Order, 0, len(raw))
	for _, s := range raw {
		var o Order
		if err := json.Unmarshal([]byte(s), &o); err != nil {
			return nil, fmt.Errorf("decode receipt: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *RedisReceipts) Close() error { return r.client.Close() }
