// Package circuitbreaker 熔断器
//
// 三种状态：
//
//	CLOSED    请求正常通过，连续失败达到阈值后转为OPEN
//	OPEN      请求直接返回ErrOpenState，OpenTimeout后转为HALF_OPEN
//	HALF_OPEN 放行至多HalfOpenProbes个探测请求，成功转CLOSED，失败回到OPEN
//
// 用于保护可选的外部依赖（如Redis缓存），依赖故障时调用方立即降级，
// 不必每次都等网络超时。
//
//	cb := circuitbreaker.New(circuitbreaker.Settings{Name: "memo-redis"})
//	err := cb.Execute(func() error { return client.Get(ctx, key).Err() })
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开，请求未执行
var ErrOpenState = errors.New("circuit breaker is open")

// Settings 熔断器配置，零值字段使用默认值
type Settings struct {
	Name             string        // 名称（日志、回调使用）
	FailureThreshold uint32        // 连续失败多少次后熔断，默认5
	OpenTimeout      time.Duration // OPEN持续时间，默认30s
	HalfOpenProbes   uint32        // 半开状态允许的探测请求数，默认1

	// IsFailure 判断错误是否计入失败，默认所有非nil错误
	// 例如缓存未命中不应该算作Redis故障
	IsFailure func(err error) bool

	// OnStateChange 状态变化回调（在锁内调用，不要做耗时操作）
	OnStateChange func(name string, from, to State)
}

// Breaker 熔断器
type Breaker struct {
	settings Settings
	now      func() time.Time

	mu                  sync.Mutex
	state               State
	generation          uint64 // 每次状态切换递增，丢弃跨状态返回的旧结果
	consecutiveFailures uint32
	inFlightProbes      uint32
	openedAt            time.Time
}

// New 创建熔断器
func New(settings Settings) *Breaker {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}
	if settings.HalfOpenProbes == 0 {
		settings.HalfOpenProbes = 1
	}
	if settings.IsFailure == nil {
		settings.IsFailure = func(err error) bool { return err != nil }
	}
	return &Breaker{
		settings: settings,
		now:      time.Now,
	}
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.settings.Name
}

// Execute 在熔断器保护下执行fn
// OPEN状态下不执行fn，直接返回ErrOpenState；否则返回fn的错误
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = fn()
	b.after(generation, !b.settings.IsFailure(err))
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refresh()
	return b.state
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refresh()
	switch b.state {
	case StateOpen:
		return b.generation, ErrOpenState
	case StateHalfOpen:
		if b.inFlightProbes >= b.settings.HalfOpenProbes {
			return b.generation, ErrOpenState
		}
		b.inFlightProbes++
	}
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refresh()
	if generation != b.generation {
		return
	}

	switch b.state {
	case StateClosed:
		if success {
			b.consecutiveFailures = 0
			return
		}
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.settings.FailureThreshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		if success {
			b.transition(StateClosed)
		} else {
			b.transition(StateOpen)
		}
	}
}

// refresh OPEN超时后转为HALF_OPEN，调用方持有锁
func (b *Breaker) refresh() {
	if b.state == StateOpen && !b.now().Before(b.openedAt.Add(b.settings.OpenTimeout)) {
		b.transition(StateHalfOpen)
	}
}

func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}

	b.state = to
	b.generation++
	b.consecutiveFailures = 0
	b.inFlightProbes = 0
	if to == StateOpen {
		b.openedAt = b.now()
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.settings.Name, from, to)
	}
}
