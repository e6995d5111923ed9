package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerRunsLastCallOnly(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var first, last atomic.Int32
	d.Debounce(func() { first.Add(1) })
	d.Debounce(func() { last.Add(1) })

	require.Eventually(t, func() bool { return last.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, first.Load())
	assert.Equal(t, int32(1), last.Load())
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var calls atomic.Int32
	d.Debounce(func() { calls.Add(1) })
	d.Cancel()
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
