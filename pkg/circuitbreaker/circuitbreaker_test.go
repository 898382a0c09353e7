package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend down")

// fakeClock 手动推进的时钟
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(settings Settings) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New(settings)
	b.now = clock.now
	return b, clock
}

func fail() error    { return errBackend }
func succeed() error { return nil }

func TestBreaker_Defaults(t *testing.T) {
	b := New(Settings{Name: "memo-redis"})

	assert.Equal(t, "memo-redis", b.Name())
	assert.Equal(t, uint32(5), b.settings.FailureThreshold)
	assert.Equal(t, 30*time.Second, b.settings.OpenTimeout)
	assert.Equal(t, uint32(1), b.settings.HalfOpenProbes)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(Settings{FailureThreshold: 3})

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, b.Execute(fail), errBackend)
	}
	// 成功清零连续失败计数
	require.NoError(t, b.Execute(succeed))
	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, b.Execute(fail), errBackend)
	}
	assert.Equal(t, StateClosed, b.State())

	assert.ErrorIs(t, b.Execute(fail), errBackend)
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "OPEN状态下不执行请求")
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b, clock := newTestBreaker(Settings{FailureThreshold: 1, OpenTimeout: 10 * time.Second})

	_ = b.Execute(fail)
	require.Equal(t, StateOpen, b.State())

	clock.advance(9 * time.Second)
	assert.Equal(t, StateOpen, b.State())

	clock.advance(time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(Settings{FailureThreshold: 1, OpenTimeout: time.Second})

	_ = b.Execute(fail)
	clock.advance(time.Second)
	require.Equal(t, StateHalfOpen, b.State())

	assert.ErrorIs(t, b.Execute(fail), errBackend)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, clock := newTestBreaker(Settings{FailureThreshold: 1, OpenTimeout: time.Second})

	_ = b.Execute(fail)
	clock.advance(time.Second)

	// 第一个探测还没返回时,第二个请求被拒绝
	err := b.Execute(func() error {
		assert.ErrorIs(t, b.Execute(succeed), ErrOpenState)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_IsFailure(t *testing.T) {
	errMiss := errors.New("miss")
	b, _ := newTestBreaker(Settings{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return err != nil && !errors.Is(err, errMiss) },
	})

	assert.ErrorIs(t, b.Execute(func() error { return errMiss }), errMiss)
	assert.Equal(t, StateClosed, b.State(), "不计入失败的错误原样返回")
}

func TestBreaker_OnStateChange(t *testing.T) {
	var transitions []string
	b, clock := newTestBreaker(Settings{
		Name:             "memo-redis",
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	clock.advance(time.Second)
	_ = b.Execute(succeed)

	assert.Equal(t, []string{
		"memo-redis:CLOSED->OPEN",
		"memo-redis:OPEN->HALF_OPEN",
		"memo-redis:HALF_OPEN->CLOSED",
	}, transitions)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
