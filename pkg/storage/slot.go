// Package storage provides durable key/value slots that back the content store.
//
// A slot holds one opaque string value per key and is always read and written
// whole, which is all the content store needs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"innovia-cms/pkg/config"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("slot not found")

type Slots interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open builds the slot backend selected by cfg.StorageDriver.
func Open(cfg *config.Config) (Slots, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverFile:
		return NewFileSlots(cfg.StoragePath)
	case config.DriverSQLite:
		return OpenSQLite(filepath.Join(cfg.StoragePath, "innovia.db"))
	case config.DriverRedis:
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case config.DriverMemcached:
		return NewMemcached(cfg.MemcachedAddr), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
