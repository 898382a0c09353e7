package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// MemoCache 记忆化结果的Redis存储(实现memo.Cache)
//
// 设计说明：
// 1. Key设计：{prefix}{sha256(参数序列化)}
//   - 参数序列化结果可能很长(整本目录)，哈希后长度固定
//   - 前缀区分业务，便于SCAN和监控
//
// 2. 值用JSON存储，命中时反序列化得到的是新对象，不和其他调用方共享
//
// 3. TTL为0表示不过期，与进程内缓存的语义一致
//
// 4. 可选熔断：Redis连续出错后直接返回错误，记忆化层降级为直接计算
type MemoCache[R any] struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	breaker *circuitbreaker.Breaker
}

// NewMemoCache 创建Redis记忆化缓存
func NewMemoCache[R any](client redis.Cmdable, prefix string, ttl time.Duration) *MemoCache[R] {
	return &MemoCache[R]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// WithBreaker 用熔断器保护所有Redis调用
func (c *MemoCache[R]) WithBreaker(breaker *circuitbreaker.Breaker) *MemoCache[R] {
	c.breaker = breaker
	return c
}

// Get 读取缓存，未命中返回ok=false
func (c *MemoCache[R]) Get(ctx context.Context, key string) (R, bool, error) {
	var zero R

	var val []byte
	err := c.do(func() error {
		var err error
		val, err = c.client.Get(ctx, c.redisKey(key)).Bytes()
		return err
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}
		return zero, false, apperrors.ErrRedisError.WithCause(err)
	}

	var v R
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(val, &v); err != nil {
		return zero, false, apperrors.Wrap(err, "缓存反序列化失败")
	}

	return v, true, nil
}

// Set 写入缓存
func (c *MemoCache[R]) Set(ctx context.Context, key string, value R) error {
	val, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, "缓存序列化失败")
	}

	err = c.do(func() error {
		return c.client.Set(ctx, c.redisKey(key), val, c.ttl).Err()
	})
	if err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}

	return nil
}

// redisKey 格式：{prefix}{sha256 hex}
func (c *MemoCache[R]) redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.prefix + hex.EncodeToString(sum[:])
}

func (c *MemoCache[R]) do(fn func() error) error {
	if c.breaker == nil {
		return fn()
	}
	return c.breaker.Execute(fn)
}

// NewBreaker 缓存专用熔断器，未命中(redis.Nil)不算故障
func NewBreaker(threshold uint32, timeout time.Duration, logger *slog.Logger) *circuitbreaker.Breaker {
	return circuitbreaker.New(circuitbreaker.Settings{
		Name:             "memo-redis",
		FailureThreshold: threshold,
		OpenTimeout:      timeout,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}
