package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memcached stores slots without expiry. Values larger than the server's
// item size limit fail on Set.
type Memcached struct {
	client *memcache.Client
}

func NewMemcached(server string) *Memcached {
	return &Memcached{client: memcache.New(server)}
}

func (m *Memcached) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("memcached get %s: %w", key, err)
	}
	return string(item.Value), nil
}

func (m *Memcached) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.client.Set(&memcache.Item{Key: key, Value: []byte(value)}); err != nil {
		return fmt.Errorf("memcached set %s: %w", key, err)
	}
	return nil
}

func (m *Memcached) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.client.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("memcached delete %s: %w", key, err)
	}
	return nil
}

func (m *Memcached) Close() error {
	return m.client.Close()
}
