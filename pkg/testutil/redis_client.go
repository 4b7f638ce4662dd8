package testutil

import (
	"context"
	"time"

	"github.com/yatube-lab/backend/pkg/xredis"
)

type MockRedisClient struct {
	ExistFunc func(ctx context.Context, key string) (bool, error)
	DelFunc   func(ctx context.Context, keys ...string) error
	KeysFunc  func(ctx context.Context, pattern string) ([]string, error)
	SetFunc   func(ctx context.Context, key, value string) error
	SetExFunc func(ctx context.Context, key, value string, ttl time.Duration) error
	GetFunc   func(ctx context.Context, key string) (string, error)
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	return false, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}

	return nil
}

func (m *MockRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(ctx, pattern)
	}

	return nil, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}

	return nil
}

func (m *MockRedisClient) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetExFunc != nil {
		return m.SetExFunc(ctx, key, value, ttl)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", xredis.ErrNotFound
}
