package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCountsWithinWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	l := NewLimiter()
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		res := l.Check("1.2.3.4", 3, time.Minute)
		assert.True(t, res.Success)
		assert.Equal(t, 2-i, res.Remaining)
		assert.Equal(t, now.Add(time.Minute), res.ResetAt)
	}

	res := l.Check("1.2.3.4", 3, time.Minute)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, now.Add(time.Minute), res.ResetAt)
}

func TestCheckIsolatesKeys(t *testing.T) {
	l := NewLimiter()
	require.True(t, l.Check("a", 1, time.Minute).Success)
	// Key "a" is exhausted; "b" is untouched.
	assert.False(t, l.Check("a", 1, time.Minute).Success)
	assert.True(t, l.Check("b", 1, time.Minute).Success)
}

func TestCheckResetsAfterWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	l := NewLimiter()
	l.now = func() time.Time { return now }

	assert.True(t, l.Check("k", 1, time.Minute).Success)
	assert.False(t, l.Check("k", 1, time.Minute).Success)

	now = now.Add(time.Minute)
	res := l.Check("k", 1, time.Minute)
	assert.True(t, res.Success)
	assert.Equal(t, now.Add(time.Minute), res.ResetAt)
}

func TestCheckConcurrentAccess(t *testing.T) {
	l := NewLimiter()
	const workers = 20
	const perWorker = 10

	var wg sync.WaitGroup
	successes := make(chan bool, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				successes <- l.Check("shared", 100, time.Minute).Success
			}
		}()
	}
	wg.Wait()
	close(successes)

	allowed := 0
	for ok := range successes {
		if ok {
			allowed++
		}
	}
	// Exactly the limit gets through; the remaining 100 requests are rejected.
	assert.Equal(t, 100, allowed)
}
