// Package memo 提供按参数序列化结果缓存的记忆化包装
//
// # 缓存key
//
// key是整个参数列表的JSON序列化结果(map按key排序),
// 所以按值比较而不是按指针比较:
//
//	memo.Key(books)        // [[{"title":"Dune",...}]]
//	memo.Key()             // []
//
// # 生命周期
//
// 缓存没有失效策略,随进程存活、只增不减,适合一次性的报表任务。
// Redis后端可以让多个进程共享同一份结果。
//
// # 使用示例
//
//	summaries := memo.New[[]string](func(args ...any) []string {
//	    return format(args[0].([]*book.Book))
//	})
//	lines, err := summaries.Call(ctx, books)
package memo

import (
	"context"
	"fmt"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// keyCodec 与标准库兼容的配置:map按key排序,保证同值同key
var keyCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// Func 被记忆化的变换
type Func[R any] func(args ...any) R

// Memoizer 记忆化包装器
type Memoizer[R any] struct {
	fn     Func[R]
	cache  Cache[R]
	group  singleflight.Group
	logger *slog.Logger
	onHit  func()
	onMiss func()
}

// Option 配置项
type Option[R any] func(*Memoizer[R])

// WithCache 指定缓存后端(默认进程内MapCache)
func WithCache[R any](cache Cache[R]) Option[R] {
	return func(m *Memoizer[R]) {
		m.cache = cache
	}
}

// WithLogger 缓存后端出错时记录日志
func WithLogger[R any](logger *slog.Logger) Option[R] {
	return func(m *Memoizer[R]) {
		m.logger = logger
	}
}

// WithHooks 命中/未命中回调(用于指标)
func WithHooks[R any](onHit, onMiss func()) Option[R] {
	return func(m *Memoizer[R]) {
		if onHit != nil {
			m.onHit = onHit
		}
		if onMiss != nil {
			m.onMiss = onMiss
		}
	}
}

// New 创建记忆化包装器
func New[R any](fn func(args ...any) R, opts ...Option[R]) *Memoizer[R] {
	m := &Memoizer[R]{
		fn:     fn,
		cache:  NewMapCache[R](),
		logger: slog.Default(),
		onHit:  func() {},
		onMiss: func() {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Memoize 进程内缓存的便捷写法
func Memoize[R any](fn func(args ...any) R) func(args ...any) (R, error) {
	m := New(fn)
	return func(args ...any) (R, error) {
		return m.Call(context.Background(), args...)
	}
}

// Call 调用被包装的函数
//
// 流程:
// 1. 序列化参数得到key,无法序列化返回ErrInvalidArgument
// 2. 命中缓存直接返回,不调用fn
// 3. 未命中时调用fn(并发的相同key只调用一次)并写入缓存
//
// 缓存后端出错时降级为直接计算,只记录日志
func (m *Memoizer[R]) Call(ctx context.Context, args ...any) (R, error) {
	var zero R

	key, err := Key(args...)
	if err != nil {
		return zero, err
	}

	if v, ok, err := m.cache.Get(ctx, key); err != nil {
		m.logger.WarnContext(ctx, "memo cache get failed", "error", err)
	} else if ok {
		m.onHit()
		return v, nil
	}

	v, _, _ := m.group.Do(key, func() (any, error) {
		// 等待期间其他调用可能已经写入
		if cached, ok, err := m.cache.Get(ctx, key); err == nil && ok {
			m.onHit()
			return cached, nil
		}

		m.onMiss()
		result := m.fn(args...)
		if err := m.cache.Set(ctx, key, result); err != nil {
			m.logger.WarnContext(ctx, "memo cache set failed", "error", err)
		}
		return result, nil
	})

	result, _ := v.(R)
	return result, nil
}

// Key 参数列表的序列化结果
func Key(args ...any) (string, error) {
	if args == nil {
		args = []any{}
	}
	data, err := keyCodec.Marshal(args)
	if err != nil {
		return "", apperrors.ErrInvalidArgument.WithCause(fmt.Errorf("参数无法序列化: %w", err))
	}
	return string(data), nil
}
