package services

import (
	"context"
	"time"
)

// CacheService is the slice of the cache the service layer depends on.
// Satisfied by pkg/cache.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TransactionRunner executes fn as one atomic unit against the
// persistence store: every repository call made with the context fn
// receives commits or rolls back together. Satisfied by pkg/database.
type TransactionRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies "today" so window arithmetic is testable.
type Clock func() time.Time
