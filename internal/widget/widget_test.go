package widget

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		op   Operation
		a, b float64
		want float64
	}{
		{OpAdd, 2, 3, 5},
		{OpSubtract, 2, 3, -1},
		{OpMultiply, 2, 3, 6},
		{OpDivide, 7, 2, 3.5},
	}

	for _, tc := range tests {
		got, err := Calculate(tc.op, tc.a, tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestCalculate_DivideByZero(t *testing.T) {
	_, err := Calculate(OpDivide, 1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestCalculate_UnknownOperation(t *testing.T) {
	_, err := Calculate("modulo", 1, 2)
	assert.Error(t, err)
}

func TestSquareRoot(t *testing.T) {
	got, err := SquareRoot(9)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = SquareRoot(-1)
	assert.ErrorIs(t, err, ErrNegativeSqrt)
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "3.50", FormatResult(3.5))
	assert.Equal(t, "0.33", FormatResult(1.0/3.0))
}

func newTestTodo(t *testing.T) *TodoList {
	t.Helper()
	l, err := NewTodoList(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, err)
	return l
}

func TestTodo_AddRejectsBlank(t *testing.T) {
	l := newTestTodo(t)

	assert.ErrorIs(t, l.Add("   "), ErrEmptyTask)
	total, _ := l.Counter()
	assert.Zero(t, total)
}

func TestTodo_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	l := newTestTodo(t)
	require.NoError(t, l.Add("Buy milk"))
	require.NoError(t, l.Add("Read book"))
	require.NoError(t, l.Add("buy bread"))

	got := l.Filtered("BUY")

	require.Len(t, got, 2)
	assert.Equal(t, "Buy milk", got[0].Text)
	assert.Equal(t, "buy bread", got[1].Text)

	assert.Len(t, l.Filtered(""), 3, "empty filter keeps everything")
}

func TestTodo_ToggleAndCounter(t *testing.T) {
	l := newTestTodo(t)
	require.NoError(t, l.Add("one"))
	require.NoError(t, l.Add("two"))

	done, err := l.Toggle(0)
	require.NoError(t, err)
	assert.True(t, done)

	total, completed := l.Counter()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, completed)

	_, err = l.Toggle(5)
	assert.ErrorIs(t, err, ErrNoSuchTask)
}

func TestTodo_ClearCompletedKeepsOrder(t *testing.T) {
	l := newTestTodo(t)
	require.NoError(t, l.Add("a"))
	require.NoError(t, l.Add("b"))
	require.NoError(t, l.Add("c"))
	_, err := l.Toggle(1)
	require.NoError(t, err)

	require.NoError(t, l.ClearCompleted())

	got := l.Filtered("")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "c", got[1].Text)
}

func TestTodo_PersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	l, err := NewTodoList(path)
	require.NoError(t, err)
	require.NoError(t, l.Add("survive restart"))
	_, err = l.Toggle(0)
	require.NoError(t, err)

	reloaded, err := NewTodoList(path)
	require.NoError(t, err)

	got := reloaded.Filtered("")
	require.Len(t, got, 1)
	assert.Equal(t, "survive restart", got[0].Text)
	assert.True(t, got[0].Completed)
}

func TestCountdown_TicksDownAndFinishes(t *testing.T) {
	c := NewCountdown()
	c.tick = 5 * time.Millisecond // speed up for the test

	var ticks atomic.Int32
	done := make(chan struct{})

	err := c.Start(3,
		func(remaining int, percent float64) {
			ticks.Add(1)
			assert.Greater(t, remaining, 0)
			assert.Greater(t, percent, 0.0)
		},
		func() { close(done) },
	)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("countdown did not finish")
	}
	assert.Equal(t, int32(2), ticks.Load(), "a 3-second countdown ticks at 2 and 1")
}

func TestCountdown_RejectsInvalidDuration(t *testing.T) {
	c := NewCountdown()
	assert.ErrorIs(t, c.Start(0, nil, nil), ErrInvalidDuration)
	assert.ErrorIs(t, c.Start(-5, nil, nil), ErrInvalidDuration)
}

func TestCountdown_StopSuppressesCallbacks(t *testing.T) {
	c := NewCountdown()
	c.tick = 50 * time.Millisecond

	var fired atomic.Bool
	err := c.Start(100,
		func(int, float64) { fired.Store(true) },
		func() { fired.Store(true) },
	)
	require.NoError(t, err)

	c.Stop()
	time.Sleep(50 * time.Millisecond)

	assert.False(t, fired.Load(), "no callbacks after Stop")
}

func TestCountdown_RestartCancelsPreviousRun(t *testing.T) {
	c := NewCountdown()
	c.tick = 5 * time.Millisecond

	var firstDone atomic.Bool
	require.NoError(t, c.Start(2, nil, func() { firstDone.Store(true) }))

	secondDone := make(chan struct{})
	require.NoError(t, c.Start(2, nil, func() { close(secondDone) }))

	select {
	case <-secondDone:
	case <-time.After(time.Second):
		t.Fatal("restarted countdown did not finish")
	}
	assert.False(t, firstDone.Load(), "the replaced run must not complete")
}
